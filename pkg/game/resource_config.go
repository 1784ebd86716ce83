package game

// ResourceConfig represents the resource table loaded from data/resources.yaml.
//
// Structure:
//
//	base_path: assets
//	sounds:
//	  - id: SOUND_DK_SPAWN1
//	    path: sounds/dk_spawn1.wav
//	music:
//	  - id: MUSIC_HOUSE
//	    path: music/house.wav
type ResourceConfig struct {
	BasePath string          `yaml:"base_path"` // Base path for all resources (e.g., "assets")
	Sounds   []SoundResource `yaml:"sounds"`    // One-shot sound effects
	Music    []SoundResource `yaml:"music"`     // Looping background tracks
}

// SoundResource represents a single sound/audio resource definition.
//
// Example:
//   - id: SOUND_DK_SPAWN1
//     path: sounds/dk_spawn1.wav
type SoundResource struct {
	ID   string `yaml:"id"`   // Resource ID (unique identifier)
	Path string `yaml:"path"` // Relative file path from base_path
}

// buildFullPath constructs the full file path for a resource.
func buildFullPath(basePath, relativePath string) string {
	if basePath == "" {
		return relativePath
	}
	if len(relativePath) > 0 && relativePath[0] == '/' {
		return basePath + relativePath
	}
	return basePath + "/" + relativePath
}
