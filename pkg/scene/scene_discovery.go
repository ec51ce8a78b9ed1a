package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-raytracer/pkg/core"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Name accepted by LoadScene
	DisplayName string `json:"displayName"` // Human readable name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "json"
	FilePath    string `json:"filePath"`    // Path to the scene file (json type only)
}

// builtinScene pairs a builtin's metadata with its constructor
type builtinScene struct {
	info  SceneInfo
	build func(seed int64) *Scene
}

var builtinScenes = []builtinScene{
	{
		info: SceneInfo{
			ID:          "default",
			DisplayName: "Default Scene",
			Description: "Metal, glass and diffuse spheres on a checkered ground",
			Type:        "builtin",
		},
		build: func(int64) *Scene { return NewDefaultScene() },
	},
	{
		info: SceneInfo{
			ID:          "spheres",
			DisplayName: "Random Spheres",
			Description: "Field of small random spheres around three large ones",
			Type:        "builtin",
		},
		build: NewSpheresScene,
	},
	{
		info: SceneInfo{
			ID:          "single",
			DisplayName: "Single Sphere",
			Description: "One diffuse sphere under the sky",
			Type:        "builtin",
		},
		build: func(int64) *Scene { return NewSingleSphereScene() },
	},
}

// ListBuiltinScenes returns metadata for the scenes compiled into the program
func ListBuiltinScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, b := range builtinScenes {
		scenes = append(scenes, b.info)
	}
	return scenes
}

// ListJSONScenes scans scenesDir for *.json scene files.
// A missing directory yields an empty list.
func ListJSONScenes(scenesDir string, logger core.Logger) ([]SceneInfo, error) {
	if _, err := os.Stat(scenesDir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(scenesDir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	var scenes []SceneInfo
	for _, filePath := range files {
		sceneInfo, err := ParseJSONMetadata(filePath)
		if err != nil {
			// Log warning but continue processing other files
			logger.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, sceneInfo)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseJSONMetadata reads the name and description fields of a scene file
func ParseJSONMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	sceneInfo := SceneInfo{
		ID:          filePath,
		DisplayName: titleCase(nameWithoutExt),
		Type:        "json",
		FilePath:    filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return sceneInfo, err
	}

	var header struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return sceneInfo, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}

	if header.Name != "" {
		sceneInfo.DisplayName = header.Name
	}
	sceneInfo.Description = header.Description
	return sceneInfo, nil
}

// ListAllScenes returns builtin scenes followed by scene files found in scenesDir
func ListAllScenes(scenesDir string, logger core.Logger) ([]SceneInfo, error) {
	jsonScenes, err := ListJSONScenes(scenesDir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to list JSON scenes: %w", err)
	}
	return append(ListBuiltinScenes(), jsonScenes...), nil
}

// LoadScene resolves a builtin name or a path to a .json scene file.
// Bare names are also looked up as <scenesDir>/<name>.json.
// seed only affects builtins with random layouts.
func LoadScene(name, scenesDir string, seed int64) (*Scene, error) {
	for _, b := range builtinScenes {
		if b.info.ID == name {
			return b.build(seed), nil
		}
	}

	if strings.HasSuffix(name, ".json") {
		return LoadJSONScene(name)
	}

	candidate := filepath.Join(scenesDir, name+".json")
	if _, err := os.Stat(candidate); err == nil {
		return LoadJSONScene(candidate)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}

// titleCase converts a filename-style string to title case
// e.g., "glass-spheres" -> "Glass Spheres"
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
