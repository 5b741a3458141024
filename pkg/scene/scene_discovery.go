package scene

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Arideno/graphics-engine/pkg/log"
)

var logger = log.New("scene")

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string // Unique identifier
	Name        string // Scene name
	Description string // Optional description
	Type        string // "builtin" or "json"
	FilePath    string // Path to the description file (json type only)
	Shapes      int    // Number of inline shapes and meshes
}

// BuiltinScenes lists the scenes compiled into the binary
func BuiltinScenes() []SceneInfo {
	return []SceneInfo{
		{
			ID:          "default",
			Name:        "Default Scene",
			Description: "Sphere on a ground plane lit by one directional light",
			Type:        "builtin",
			Shapes:      2,
		},
	}
}

// ListScenes scans dir for *.json scene descriptions. Files that fail to
// parse are skipped with a warning.
func ListScenes(dir string) ([]SceneInfo, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	var scenes []SceneInfo
	for _, filePath := range files {
		desc, err := LoadDescription(filePath)
		if err != nil {
			logger.Warningf("skipping %s: %v", filePath, err)
			continue
		}
		scenes = append(scenes, describe(filePath, desc))
	}

	// Sort scenes by name
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})

	return scenes, nil
}

// ListAllScenes returns the built-in scenes followed by those found in dir
func ListAllScenes(dir string) ([]SceneInfo, error) {
	found, err := ListScenes(dir)
	if err != nil {
		return nil, err
	}
	return append(BuiltinScenes(), found...), nil
}

func describe(filePath string, desc *Description) SceneInfo {
	nameWithoutExt := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))

	info := SceneInfo{
		ID:          fmt.Sprintf("json:%s", nameWithoutExt),
		Name:        desc.Name,
		Description: desc.Description,
		Type:        "json",
		FilePath:    filePath,
		Shapes:      len(desc.Spheres) + len(desc.Planes) + len(desc.Triangles) + len(desc.Meshes),
	}
	if info.Name == "" {
		info.Name = titleCase(nameWithoutExt)
	}
	return info
}

func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
