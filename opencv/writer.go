package opencv

import (
	"image"
	"log"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"motiontracker/recording"
	"motiontracker/types"
)

// NewWriterOpener returns an Opener that tries each configured codec in turn
func NewWriterOpener(config types.VideoConfig) recording.Opener[gocv.Mat] {
	return func(path string, size image.Point) (recording.Writer[gocv.Mat], error) {
		if len(config.Codecs) == 0 {
			return nil, errors.New("no video codecs configured")
		}

		var lastErr error
		for _, fourcc := range config.Codecs {
			vw, err := gocv.VideoWriterFile(path, fourcc, config.FPS, size.X, size.Y, true)
			if err != nil {
				lastErr = err
				continue
			}
			if !vw.IsOpened() {
				_ = vw.Close()
				lastErr = errors.Errorf("codec %s not available", fourcc)
				continue
			}
			log.Printf("Video writer opened with codec %s at %.1f fps", fourcc, config.FPS)
			return vw, nil
		}

		return nil, errors.Wrap(lastErr, "could not create video writer with any codec")
	}
}
