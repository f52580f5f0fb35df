package rod

import (
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// session is a single headless browser process and its control connection.
// A session is used for exactly one page and then torn down.
type session struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
}

// launchSession starts a new browser instance with stability flags.
// If bin is empty, rod finds or downloads a Chromium build.
func launchSession(bin string) (*session, error) {
	lnchr := launcher.New().
		Set("disable-gpu").
		Set("window-size", "1920,1080").
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)
	if bin != "" {
		lnchr = lnchr.Bin(bin)
	}

	u, err := lnchr.Launch()
	if err != nil {
		lnchr.Kill()
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		lnchr.Cleanup()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return &session{browser: browser, launcher: lnchr}, nil
}

// pid returns the process ID of the browser launcher.
func (s *session) pid() int {
	return s.launcher.PID()
}

// close shuts down the browser, kills the process and removes its profile
// directory. The process is killed even if the browser fails to close.
func (s *session) close() error {
	err := s.browser.Close()
	s.launcher.Kill()
	s.launcher.Cleanup()
	return err
}
