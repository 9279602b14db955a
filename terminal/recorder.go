package terminal

// Recorder is an in-memory Terminal for tests. Writes are recorded per
// call so renderer tests can assert atomicity and byte counts.
type Recorder struct {
	W, H   int
	Mode   ColorMode
	Writes [][]byte
	Keys   []KeyEvent // Queue consumed by ReadKey
	Cursor bool

	resizeCh chan ResizeEvent
}

// NewRecorder creates a recorder with the given dimensions
func NewRecorder(w, h int) *Recorder {
	return &Recorder{
		W:        w,
		H:        h,
		Mode:     ColorModeTrueColor,
		resizeCh: make(chan ResizeEvent, 1),
	}
}

func (r *Recorder) Init() error { return nil }
func (r *Recorder) Fini()       {}

func (r *Recorder) Size() (int, int) { return r.W, r.H }

func (r *Recorder) ResizeChan() <-chan ResizeEvent { return r.resizeCh }

func (r *Recorder) ColorMode() ColorMode { return r.Mode }

func (r *Recorder) ReadKey() (KeyEvent, bool) {
	if len(r.Keys) == 0 {
		return KeyEvent{}, false
	}
	ev := r.Keys[0]
	r.Keys = r.Keys[1:]
	return ev, true
}

func (r *Recorder) Write(p []byte) error {
	cp := make([]byte, len(p))
	copy(cp, p)
	r.Writes = append(r.Writes, cp)
	return nil
}

func (r *Recorder) SetCursorVisible(visible bool) { r.Cursor = visible }

// PushKey queues a key event for ReadKey
func (r *Recorder) PushKey(ev KeyEvent) { r.Keys = append(r.Keys, ev) }

// PushResize queues a resize event
func (r *Recorder) PushResize(w, h int) {
	r.W, r.H = w, h
	select {
	case r.resizeCh <- ResizeEvent{Width: w, Height: h}:
	default:
	}
}

// BytesWritten returns the total size of all recorded writes
func (r *Recorder) BytesWritten() int {
	total := 0
	for _, w := range r.Writes {
		total += len(w)
	}
	return total
}
