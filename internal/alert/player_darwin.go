//go:build darwin

package alert

import (
	"fmt"
	"os/exec"
)

type commandPlayer struct{}

func newPlayer() Player {
	return &commandPlayer{}
}

func (player *commandPlayer) Play(filePath string, volume int) error {
	// afplay volume is 0.0-1.0.
	scaled := fmt.Sprintf("%.2f", float64(volume)/100)
	if err := exec.Command("afplay", "-v", scaled, filePath).Run(); err != nil {
		return fmt.Errorf("afplay: %w", err)
	}
	return nil
}
