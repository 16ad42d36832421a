package types

import (
	"image"
	"io"
	"log"
	"strings"
	"sync"
	"time"
)

// TrackedObject is one user-selected region followed across frames.
// Positions holds one center per successful tracker update; the initial
// selection is not included.
type TrackedObject struct {
	ID            int
	CreationFrame int
	LastFrame     int
	Positions     []image.Point
	Active        bool
}

// Lifetime returns the number of frames between creation and the last successful update
func (o *TrackedObject) Lifetime() int {
	return o.LastFrame - o.CreationFrame
}

// Overlay is a per-frame drawing directive for one tracked object
type Overlay struct {
	ID  int
	Box image.Rectangle
}

// Status is the session summary the renderer draws on top of each frame
type Status struct {
	Recording         bool
	RecordingDuration time.Duration
	ActiveCount       int
	TotalCount        int
	FrameCount        int
	DebugMode         bool
	DebugLogs         []string
}

// CaptureConfig holds frame acquisition and preprocessing settings
type CaptureConfig struct {
	FrameWidth int  `yaml:"frame_width" env:"FRAME_WIDTH" validate:"gte=0"`
	Mirror     bool `yaml:"mirror" env:"MIRROR"`
	Stabilize  bool `yaml:"stabilize" env:"STABILIZE"`
}

// DefaultCaptureConfig returns the default capture configuration
func DefaultCaptureConfig() CaptureConfig {
	return CaptureConfig{
		FrameWidth: 900,
		Mirror:     true,
		Stabilize:  false,
	}
}

// TrackingConfig selects the per-object tracking algorithm
type TrackingConfig struct {
	Algorithm string `yaml:"algorithm" env:"ALGORITHM" validate:"oneof=csrt kcf mil"`
}

// DefaultTrackingConfig returns the default tracking configuration
func DefaultTrackingConfig() TrackingConfig {
	return TrackingConfig{
		Algorithm: "csrt",
	}
}

// VideoConfig holds video recording configuration
type VideoConfig struct {
	FPS    float64  `yaml:"fps" env:"FPS" validate:"gt=0"`
	Codecs []string `yaml:"codecs" env:"CODECS" envSeparator:"," validate:"min=1,dive,len=4"`
}

// DefaultVideoConfig returns the default video configuration
func DefaultVideoConfig() VideoConfig {
	return VideoConfig{
		FPS:    20.0,
		Codecs: []string{"mp4v", "avc1", "H264"},
	}
}

// UIConfig holds UI configuration constants
type UIConfig struct {
	WindowName    string  `yaml:"window_name" env:"WINDOW_NAME" validate:"required"`
	PollDelayMs   int     `yaml:"poll_delay_ms" env:"POLL_DELAY_MS" validate:"gte=1"`
	LabelFontSize float64 `yaml:"label_font_size" env:"LABEL_FONT_SIZE" validate:"gt=0"`
	HelpFontSize  float64 `yaml:"help_font_size" env:"HELP_FONT_SIZE" validate:"gt=0"`
	MaxDebugLogs  int     `yaml:"max_debug_logs" env:"MAX_DEBUG_LOGS" validate:"gte=1"`
	DebugFontSize float64 `yaml:"debug_font_size" env:"DEBUG_FONT_SIZE" validate:"gt=0"`
}

// DefaultUIConfig returns the default UI configuration
func DefaultUIConfig() UIConfig {
	return UIConfig{
		WindowName:    "Object Tracking",
		PollDelayMs:   30,
		LabelFontSize: 0.6,
		HelpFontSize:  0.7,
		MaxDebugLogs:  10,
		DebugFontSize: 0.8,
	}
}

// OutputConfig names the artifacts written at session end
type OutputConfig struct {
	Dir       string `yaml:"dir" env:"OUTPUT_DIR" validate:"required"`
	VideoFile string `yaml:"video_file" env:"VIDEO_FILE" validate:"required"`
	StatsFile string `yaml:"stats_file" env:"STATS_FILE" validate:"required"`
	PlotPNG   string `yaml:"plot_png" env:"PLOT_PNG"`
	PlotHTML  string `yaml:"plot_html" env:"PLOT_HTML"`
	DBPath    string `yaml:"db_path" env:"DB_PATH"`
}

// DefaultOutputConfig returns the default output configuration
func DefaultOutputConfig() OutputConfig {
	return OutputConfig{
		Dir:       ".",
		VideoFile: "tracked_output.mp4",
		StatsFile: "tracking_stats.csv",
		PlotPNG:   "motion_paths.png",
		PlotHTML:  "motion_paths.html",
	}
}

// DebugLogger keeps the most recent log lines for on-screen display
type DebugLogger struct {
	mu             sync.Mutex
	enabled        bool
	logs           []string
	maxLogs        int
	originalOutput io.Writer
}

// NewDebugLogger creates a new debug logger
func NewDebugLogger(maxLogs int) *DebugLogger {
	return &DebugLogger{
		maxLogs:        maxLogs,
		originalOutput: log.Default().Writer(),
	}
}

// Enabled reports whether lines are being captured
func (d *DebugLogger) Enabled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.enabled
}

// Toggle flips debug capture and returns the new state
func (d *DebugLogger) Toggle() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.enabled = !d.enabled
	return d.enabled
}

// Log adds a debug message to the log buffer
func (d *DebugLogger) Log(message string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.enabled {
		return
	}

	d.logs = append(d.logs, message)
	if len(d.logs) > d.maxLogs {
		d.logs = d.logs[len(d.logs)-d.maxLogs:]
	}
}

// GetLogs returns a copy of the current debug logs
func (d *DebugLogger) GetLogs() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	logs := make([]string, len(d.logs))
	copy(logs, d.logs)
	return logs
}

// Write implements io.Writer interface to capture log output
func (d *DebugLogger) Write(p []byte) (n int, err error) {
	if d.originalOutput != nil {
		_, _ = d.originalOutput.Write(p)
	}

	message := strings.TrimSpace(string(p))
	// Format: "2006/01/02 15:04:05 message"
	if len(message) > 19 && message[4] == '/' && message[7] == '/' && message[10] == ' ' {
		if spaceIndex := strings.Index(message[11:], " "); spaceIndex != -1 {
			message = message[11+spaceIndex+1:]
		}
	}
	if message != "" {
		d.Log(message)
	}

	return len(p), nil
}

// SetAsLogOutput configures this debug logger to capture standard log output
func (d *DebugLogger) SetAsLogOutput() {
	log.SetOutput(d)
}

// RestoreOriginalLogOutput restores the original log output
func (d *DebugLogger) RestoreOriginalLogOutput() {
	if d.originalOutput != nil {
		log.SetOutput(d.originalOutput)
	}
}
