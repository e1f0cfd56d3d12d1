package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownScene is returned when a scene name is not registered
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo represents a registered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

type registration struct {
	info   SceneInfo
	create func() *Scene
}

var builtIn = map[string]registration{
	"default": {
		info: SceneInfo{
			Description: "White sphere on a floor under a single light",
			Group:       "Built-in Scenes",
		},
		create: NewDefaultScene,
	},
	"room": {
		info: SceneInfo{
			Description: "Box room with colored walls, a mirror sphere and a ceiling fixture",
			Group:       "Built-in Scenes",
		},
		create: NewRoomScene,
	},
	"random-spheres": {
		info: SceneInfo{
			Description: "Seeded field of random spheres and colored lights",
			Group:       "Generated Scenes",
		},
		create: func() *Scene {
			return NewRandomSpheresScene(DefaultRandomSpheresConfig())
		},
	},
}

// List returns every registered scene sorted by ID
func List() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtIn))
	for id, reg := range builtIn {
		info := reg.info
		info.ID = id
		info.DisplayName = titleCase(id)
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// Has reports whether name is a registered scene
func Has(name string) bool {
	_, ok := builtIn[name]
	return ok
}

// Create builds the named scene
func Create(name string) (*Scene, error) {
	reg, ok := builtIn[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return reg.create(), nil
}

// ListAllScenes returns the registered scenes grouped by category, built-in group first
func ListAllScenes() ScenesResponse {
	var response ScenesResponse

	groupMap := make(map[string][]SceneInfo)
	for _, info := range List() {
		groupMap[info.Group] = append(groupMap[info.Group], info)
	}

	// Create ordered groups (Built-in first, then alphabetical)
	var groupNames []string
	for groupName := range groupMap {
		if groupName != "Built-in Scenes" {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	if builtInGroup, exists := groupMap["Built-in Scenes"]; exists {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   "Built-in Scenes",
			Scenes: builtInGroup,
		})
	}

	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response
}

// titleCase converts an identifier to title case
// e.g., "random-spheres" -> "Random Spheres"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
