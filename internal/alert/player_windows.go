//go:build windows

package alert

import (
	"fmt"
	"os/exec"
	"strings"
)

type commandPlayer struct{}

func newPlayer() Player {
	return &commandPlayer{}
}

func (player *commandPlayer) Play(filePath string, volume int) error {
	// Media.SoundPlayer follows the system volume; the configured level
	// is applied through the mixer on the other platforms only.
	escaped := strings.ReplaceAll(filePath, "'", "''")
	script := fmt.Sprintf("(New-Object Media.SoundPlayer '%s').PlaySync()", escaped)
	command := exec.Command("powershell", "-NoProfile", "-NonInteractive", "-Command", script)
	if err := command.Run(); err != nil {
		return fmt.Errorf("powershell soundplayer: %w", err)
	}
	return nil
}
