package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/tray"
)

func main() {
	cameraID := flag.Int("camera", 0, "camera device ID")
	addr := flag.String("addr", ":8080", "HTTP listen address")
	particles := flag.Int("particles", 600, "particle count")
	motionThresh := flag.Float64("motion-threshold", 1.0, "motion detection threshold (percent of changed pixels)")
	flag.Parse()

	fmt.Println("Mudra - Hand Gesture Particle Visualization")

	a := app.New(app.Config{
		CameraID:      *cameraID,
		ParticleCount: *particles,
		MotionThresh:  *motionThresh,
	})

	hub := server.NewParticlesHandler()
	a.SetSink(hub)

	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving viewer from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Camera:    a.Camera(),
		Particles: hub,
	})

	go func() {
		fmt.Printf("Starting server on %s\n", *addr)
		if err := srv.ListenAndServe(*addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start pipeline: %v", err)
	}

	t := tray.New()
	t.OnToggle(a.SetEnabled)
	t.OnViewer(func() { openBrowser("http://localhost" + *addr) })
	t.OnQuit(a.Stop)
	a.OnStatus(func(s app.Status) { t.SetStatus(string(s)) })

	// Release resources on SIGINT/SIGTERM as well as tray quit.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		a.Stop()
		os.Exit(0)
	}()

	// Blocks until quit.
	t.Run()
}

// openBrowser opens the given URL with the platform's default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}

// findWebDir searches for the viewer directory in common locations.
// It checks "web", "../web", "../../web", and ~/.mudra/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".mudra", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
