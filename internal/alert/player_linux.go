//go:build linux

package alert

import (
	"fmt"
	"os/exec"
)

type commandPlayer struct {
	paplayPath string
	aplayPath  string
}

func newPlayer() Player {
	player := &commandPlayer{}
	if path, err := exec.LookPath("paplay"); err == nil {
		player.paplayPath = path
	}
	if path, err := exec.LookPath("aplay"); err == nil {
		player.aplayPath = path
	}
	return player
}

func (player *commandPlayer) Play(filePath string, volume int) error {
	if player.paplayPath != "" {
		// paplay volume is linear 0-65536.
		scaled := volume * 65536 / 100
		if err := exec.Command(player.paplayPath, fmt.Sprintf("--volume=%d", scaled), filePath).Run(); err != nil {
			return fmt.Errorf("paplay: %w", err)
		}
		return nil
	}
	if player.aplayPath != "" {
		if err := exec.Command(player.aplayPath, "-q", filePath).Run(); err != nil {
			return fmt.Errorf("aplay: %w", err)
		}
		return nil
	}
	return fmt.Errorf("no audio player found")
}
