package paths

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
)

// ProjectDirName is the per-workspace configuration directory.
const ProjectDirName = ".ricochet"

// GetGlobalDir returns the root Ricochet directory in the user's home (~/.ricochet)
func GetGlobalDir() string {
	if dir := os.Getenv("RICOCHET_HOME"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ProjectDirName)
}

// GetProjectDir returns the .ricochet directory inside a workspace.
func GetProjectDir(cwd string) string {
	return filepath.Join(cwd, ProjectDirName)
}

// GetWorkspaceHash returns a short SHA256 hash of the absolute workspace path
func GetWorkspaceHash(workspaceRoot string) string {
	abs, err := filepath.Abs(workspaceRoot)
	if err != nil {
		abs = workspaceRoot
	}
	hash := sha256.Sum256([]byte(abs))
	return hex.EncodeToString(hash[:8])
}

// GetLogDir returns the log directory for a workspace inside globalDir.
func GetLogDir(globalDir, workspaceRoot string) string {
	hash := GetWorkspaceHash(workspaceRoot)
	return filepath.Join(globalDir, "logs", hash)
}

// GetSystemPromptOverride returns the path of the file that replaces the
// generated system prompt body for a mode.
func GetSystemPromptOverride(cwd, mode string) string {
	return filepath.Join(GetProjectDir(cwd), "system-prompt-"+mode)
}

// GetModesFile returns the custom modes file inside dir.
func GetModesFile(dir string) string {
	return filepath.Join(dir, "modes.yaml")
}

// EnsureDir creates the directory and all parents if they don't exist
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
