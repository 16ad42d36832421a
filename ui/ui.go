package ui

import (
	"fmt"
	"image"
	"image/color"
	"log"

	"gocv.io/x/gocv"

	"motiontracker/input"
	"motiontracker/types"
	"motiontracker/utils"
)

var (
	Red    = color.RGBA{R: 255}
	Green  = color.RGBA{G: 255}
	Yellow = color.RGBA{R: 255, G: 255}
	Cyan   = color.RGBA{G: 255, B: 255}
	White  = color.RGBA{R: 255, G: 255, B: 255}
	Black  = color.RGBA{R: 0, G: 0, B: 0, A: 120}
)

// Window is the on-screen display of the tracking loop
type Window struct {
	window *gocv.Window
	config types.UIConfig
}

// NewWindow opens the display window
func NewWindow(config types.UIConfig) *Window {
	return &Window{
		window: gocv.NewWindow(config.WindowName),
		config: config,
	}
}

// DrawOverlays draws the box, id label and tracking caption of every updated object
func (w *Window) DrawOverlays(frame gocv.Mat, overlays []types.Overlay) {
	for _, o := range overlays {
		DrawTrackingRect(&frame, o, w.config)
	}
}

// DrawTrackingRect draws one tracked object on the frame
func DrawTrackingRect(frame *gocv.Mat, o types.Overlay, config types.UIConfig) {
	_ = gocv.Rectangle(frame, o.Box, Green, 2)

	label := fmt.Sprintf("ID %d", o.ID)
	if err := gocv.PutText(frame, label, image.Pt(o.Box.Min.X, o.Box.Min.Y-10), gocv.FontHersheySimplex, config.LabelFontSize, Cyan, 2); err != nil {
		log.Printf("Error adding label text: %v", err)
	}
	if err := gocv.PutText(frame, "TRACKING", image.Pt(o.Box.Min.X, o.Box.Min.Y-30), gocv.FontHersheyPlain, 1.5, Yellow, 2); err != nil {
		log.Printf("Error adding tracking text: %v", err)
	}
}

// DrawStatus draws everything that must not end up in the recording
func (w *Window) DrawStatus(frame gocv.Mat, status types.Status) {
	DrawRecordingStatus(&frame, status)
	DrawHelpText(&frame, status, w.config)
	DrawDebugLogs(&frame, status, w.config)
}

// DrawRecordingStatus draws the REC indicator and timer in the top right corner
func DrawRecordingStatus(frame *gocv.Mat, status types.Status) {
	if !status.Recording {
		return
	}

	d := status.RecordingDuration
	text := fmt.Sprintf("REC %02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
	textSize := gocv.GetTextSize(text, gocv.FontHersheySimplex, 0.7, 2)

	if err := gocv.PutText(frame, text, image.Pt(frame.Cols()-textSize.X-10, 30), gocv.FontHersheySimplex, 0.7, Red, 2); err != nil {
		log.Printf("Error adding recording text: %v", err)
	}
}

// DrawHelpText draws the key reference and object counters
func DrawHelpText(frame *gocv.Mat, status types.Status, config types.UIConfig) {
	if err := gocv.PutText(frame, input.Help, image.Pt(20, 40), gocv.FontHersheySimplex, config.HelpFontSize, White, 2); err != nil {
		log.Printf("Error adding help text: %v", err)
	}

	counters := fmt.Sprintf("Frame %d  Active %d  Total %d", status.FrameCount, status.ActiveCount, status.TotalCount)
	helpY := frame.Rows() - 20
	textSize := gocv.GetTextSize(counters, gocv.FontHersheyPlain, 1.2, 1)
	bg := image.Rect(5, helpY-textSize.Y-5, textSize.X+15, helpY+5)
	if err := gocv.Rectangle(frame, bg, Black, -1); err != nil {
		log.Printf("Error drawing counter background: %v", err)
	}
	if err := gocv.PutText(frame, counters, image.Pt(10, helpY), gocv.FontHersheyPlain, 1.2, White, 1); err != nil {
		log.Printf("Error adding counter text: %v", err)
	}
}

// DrawDebugLogs draws the debug log messages on screen
func DrawDebugLogs(frame *gocv.Mat, status types.Status, config types.UIConfig) {
	if !status.DebugMode || len(status.DebugLogs) == 0 {
		return
	}

	frameWidth := frame.Cols()
	startY := 100
	lineHeight := 20
	maxWidth := 400
	padding := 10

	debugHeight := len(status.DebugLogs)*lineHeight + padding*2
	debugRect := image.Rect(frameWidth-maxWidth-padding, startY-padding, frameWidth-padding, startY+debugHeight-padding)
	if err := gocv.Rectangle(frame, debugRect, Black, -1); err != nil {
		log.Printf("Error drawing debug background: %v", err)
	}

	header := fmt.Sprintf("Debug Logs (%d):", len(status.DebugLogs))
	if err := gocv.PutText(frame, header, image.Pt(frameWidth-maxWidth, startY), gocv.FontHersheyPlain, config.DebugFontSize, Yellow, 1); err != nil {
		log.Printf("Error adding debug header: %v", err)
	}

	for i, msg := range status.DebugLogs {
		y := startY + (i+1)*lineHeight
		if len(msg) > 50 {
			msg = msg[:47] + "..."
		}
		if err := gocv.PutText(frame, msg, image.Pt(frameWidth-maxWidth, y), gocv.FontHersheyPlain, config.DebugFontSize, White, 1); err != nil {
			log.Printf("Error adding debug text: %v", err)
		}
	}
}

// Show displays the frame
func (w *Window) Show(frame gocv.Mat) {
	if err := w.window.IMShow(frame); err != nil {
		log.Printf("Error showing frame: %v", err)
	}
}

// WaitKey polls the keyboard for up to delayMs milliseconds
func (w *Window) WaitKey(delayMs int) int {
	return w.window.WaitKey(delayMs)
}

// SelectRegion blocks until the user drags a region and confirms it.
// A cancelled selection comes back as an empty rectangle.
func (w *Window) SelectRegion(frame gocv.Mat) image.Rectangle {
	if err := gocv.PutText(&frame, "Select ROI and press ENTER", image.Pt(20, 80), gocv.FontHersheySimplex, w.config.HelpFontSize, Cyan, 2); err != nil {
		log.Printf("Error adding selection text: %v", err)
	}

	roi := w.window.SelectROI(frame)
	return utils.ClampToFrame(roi, frame.Cols(), frame.Rows())
}

// Close releases the window
func (w *Window) Close() error {
	return w.window.Close()
}

// PrintStartupInstructions prints the initial control instructions
func PrintStartupInstructions() {
	fmt.Println("Controls:")
	fmt.Println("- Press 's' to select a new object to track (drag, then ENTER)")
	fmt.Println("- Press 'u' to stop tracking every object")
	fmt.Println("- Press 'r' to start recording, 'x' to stop")
	fmt.Println("- Press 'd' to toggle debug mode (shows last N logs on screen)")
	fmt.Println("- Press 'q' or ESC to quit and compute statistics")
}
