package game

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/ncruces/zenity"
	"go.uber.org/zap"

	"github.com/iburimskiy/ecg-monitor/internal/config"
	"github.com/iburimskiy/ecg-monitor/internal/pathology"
	"github.com/iburimskiy/ecg-monitor/internal/waveform"
)

const (
	ticksPerSecond = 60.0
	sweepGap       = 14

	// Rhythm button geometry
	buttonWidth  = 120
	buttonHeight = 32
	buttonX      = 20
	buttonY      = 36

	gridMinorStep = 8
	gridMajorStep = 40

	hrStep    = 5.0
	noiseStep = 0.005
)

var (
	gridMinorColor = color.RGBA{R: 0, G: 40, B: 12, A: 255}
	gridMajorColor = color.RGBA{R: 0, G: 70, B: 22, A: 255}
	traceColor     = color.RGBA{R: 40, G: 255, B: 90, A: 255}
	cursorColor    = color.RGBA{R: 0, G: 120, B: 40, A: 180}
	bgColor        = color.RGBA{R: 0, G: 8, B: 2, A: 255}
)

// Monitor is the bedside-monitor view: a sweeping Lead II trace with grid,
// status readouts, QRS blip audio and interactive pathology/rate controls.
// It owns all time-stepping; the synthesizer only ever sees (phase, config,
// beat index) values the monitor derives here.
type Monitor struct {
	synth  *waveform.Synthesizer
	cfg    waveform.Config
	view   config.MonitorConfig
	logger *zap.Logger

	sessionID string

	trace *sweepTrace
	pulse *pulseDetector
	blip  *blipStreamer

	phase float64
	beat  int64

	elapsedTicks int64
	paused       bool
	beepOn       bool

	pickerOpen bool
	pickerCh   chan pickerResult

	prevKey       map[ebiten.Key]bool
	buttonHovered bool
	buttonPressed bool

	lastErr error
}

// New builds a Monitor around an already-clamped synthesis config.
func New(view config.MonitorConfig, cfg waveform.Config, synth *waveform.Synthesizer, logger *zap.Logger) *Monitor {
	m := &Monitor{
		synth:     synth,
		cfg:       cfg,
		view:      view,
		logger:    logger,
		sessionID: uuid.New().String(),
		trace:     newSweepTrace(view.WindowWidth, sweepGap),
		pulse:     newPulseDetector(0.6*cfg.Amplitude, ticksPerSecond*view.SweepSpeed),
		beepOn:    view.BeepEnabled,
		pickerCh:  make(chan pickerResult, 1),
		prevKey:   map[ebiten.Key]bool{},
	}

	if view.BeepEnabled {
		blip, err := startBeeper()
		if err != nil {
			m.logger.Warn("speaker unavailable, beep disabled", zap.Error(err))
			m.beepOn = false
		} else {
			m.blip = blip
		}
	}

	m.logger.Info("monitoring session started",
		zap.String("session_id", m.sessionID),
		zap.String("pathology", string(cfg.Pathology)),
		zap.Float64("heart_rate", cfg.HeartRate))
	return m
}

func (m *Monitor) Update() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !m.prevKey[k]
		m.prevKey[k] = pressed
		return jp
	}

	// Rhythm button
	mouseX, mouseY := ebiten.CursorPosition()
	m.buttonHovered = mouseX >= buttonX && mouseX <= buttonX+buttonWidth &&
		mouseY >= buttonY && mouseY <= buttonY+buttonHeight
	if m.buttonHovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		m.buttonPressed = true
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if m.buttonPressed && m.buttonHovered {
			m.openPathologyPicker()
		}
		m.buttonPressed = false
	}

	if justPressed(ebiten.KeyP) {
		m.openPathologyPicker()
	}
	if justPressed(ebiten.KeySpace) {
		m.paused = !m.paused
	}
	if justPressed(ebiten.KeyB) {
		m.beepOn = !m.beepOn && m.blip != nil
	}
	if justPressed(ebiten.KeyUp) {
		m.setHeartRate(m.cfg.HeartRate + hrStep)
	}
	if justPressed(ebiten.KeyDown) {
		m.setHeartRate(m.cfg.HeartRate - hrStep)
	}
	if justPressed(ebiten.KeyEqual) { // '+' without shift on most layouts
		m.setGain(m.cfg.Amplitude + 0.1)
	}
	if justPressed(ebiten.KeyMinus) {
		m.setGain(m.cfg.Amplitude - 0.1)
	}
	if ebiten.IsKeyPressed(ebiten.KeyN) {
		m.cfg.Noise = clamp01(m.cfg.Noise + noiseStep)
	}
	if ebiten.IsKeyPressed(ebiten.KeyM) {
		m.cfg.Noise = clamp01(m.cfg.Noise - noiseStep)
	}
	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	m.drainPicker()

	if !m.paused {
		m.advance()
		m.elapsedTicks++
	}
	return nil
}

// advance steps the trace by one tick's worth of columns, one synthesized
// sample per column.
func (m *Monitor) advance() {
	columnsPerSecond := ticksPerSecond * m.view.SweepSpeed
	phasePerColumn := (m.cfg.HeartRate / 60.0) / columnsPerSecond

	cols := int(m.view.SweepSpeed)
	if cols < 1 {
		cols = 1
	}
	for i := 0; i < cols; i++ {
		v := m.synth.Sample(m.phase, m.cfg, m.beat)
		m.trace.Push(v)

		if m.pulse.Process(v) && m.beepOn && m.blip != nil {
			m.blip.Trigger()
		}

		m.phase += phasePerColumn
		if m.phase >= 1 {
			m.phase -= 1
			m.beat++
		}
	}
}

func (m *Monitor) setHeartRate(bpm float64) {
	m.cfg.HeartRate = config.ClampHeartRate(bpm)
	m.pulse.Reset()
}

// setGain changes the trace amplitude and keeps the QRS detector threshold
// proportional to it.
func (m *Monitor) setGain(a float64) {
	m.cfg.Amplitude = config.NormalizeAmplitude(a)
	m.pulse.SetThreshold(0.6 * m.cfg.Amplitude)
}

// drainPicker applies a pending picker result, if any. Dialog errors reach
// lastErr only here, on the game-loop goroutine.
func (m *Monitor) drainPicker() {
	select {
	case res := <-m.pickerCh:
		m.pickerOpen = false
		if res.err != nil {
			m.lastErr = res.err
			return
		}
		if res.id != "" {
			m.applyPathology(res.id)
		}
	default:
	}
}

func (m *Monitor) applyPathology(id pathology.ID) {
	preset, ok := pathology.Lookup(id)
	if !ok {
		id = pathology.Normal
		preset, _ = pathology.Lookup(id)
	}
	m.cfg.Pathology = id
	m.cfg.HeartRate = config.ClampHeartRate(preset.HeartRate)
	m.cfg.Amplitude = config.NormalizeAmplitude(preset.Amplitude)
	m.cfg.Noise = config.ClampNoise(preset.Noise)
	m.cfg.SampleRate = preset.SampleRate

	m.phase = 0
	m.beat = 0
	m.trace.Reset()
	m.pulse.Reset()
	m.pulse.SetThreshold(0.6 * m.cfg.Amplitude)

	m.logger.Info("pathology selected",
		zap.String("session_id", m.sessionID),
		zap.String("pathology", string(id)),
		zap.Float64("heart_rate", m.cfg.HeartRate))
}

// pickerResult carries the dialog outcome back to the game loop; the
// goroutine never touches Monitor fields directly.
type pickerResult struct {
	id  pathology.ID
	err error
}

// openPathologyPicker shows the native list dialog on its own goroutine so
// the game loop keeps running; the choice comes back through pickerCh.
func (m *Monitor) openPathologyPicker() {
	if m.pickerOpen {
		return
	}
	m.pickerOpen = true

	ids := pathology.All()
	names := make([]string, len(ids))
	byName := make(map[string]pathology.ID, len(ids))
	for i, id := range ids {
		names[i] = pathology.DisplayName(id)
		byName[names[i]] = id
	}

	go func() {
		choice, err := zenity.List("Select rhythm", names, zenity.Title("ECG Monitor"))
		if err != nil {
			if errors.Is(err, zenity.ErrCanceled) {
				err = nil
			}
			m.pickerCh <- pickerResult{err: err}
			return
		}
		m.pickerCh <- pickerResult{id: byName[choice]}
	}()
}

func (m *Monitor) Draw(screen *ebiten.Image) {
	screen.Fill(bgColor)
	m.drawGrid(screen)
	m.drawTrace(screen)
	m.drawButton(screen)
	m.drawStatus(screen)
}

func (m *Monitor) drawGrid(screen *ebiten.Image) {
	w, h := m.view.WindowWidth, m.view.WindowHeight
	for x := 0; x < w; x += gridMinorStep {
		c := gridMinorColor
		if x%gridMajorStep == 0 {
			c = gridMajorColor
		}
		vector.StrokeLine(screen, float32(x), 0, float32(x), float32(h), 1, c, false)
	}
	for y := 0; y < h; y += gridMinorStep {
		c := gridMinorColor
		if y%gridMajorStep == 0 {
			c = gridMajorColor
		}
		vector.StrokeLine(screen, 0, float32(y), float32(w), float32(y), 1, c, false)
	}
}

func (m *Monitor) drawTrace(screen *ebiten.Image) {
	columns, written, cursor := m.trace.Snapshot()

	baseline := float64(m.view.WindowHeight) * 0.55
	scale := float64(m.view.WindowHeight) * 0.28

	for x := 1; x < len(columns); x++ {
		if !written[x-1] || !written[x] {
			continue
		}
		if m.trace.InGap(x-1, cursor) || m.trace.InGap(x, cursor) {
			continue
		}
		y0 := baseline - columns[x-1]*scale
		y1 := baseline - columns[x]*scale
		vector.StrokeLine(screen, float32(x-1), float32(y0), float32(x), float32(y1), 2, traceColor, false)
	}

	vector.StrokeLine(screen, float32(cursor), 0, float32(cursor), float32(m.view.WindowHeight), 1, cursorColor, false)
}

func (m *Monitor) drawButton(screen *ebiten.Image) {
	var bg color.Color
	switch {
	case m.buttonPressed:
		bg = color.RGBA{R: 0, G: 60, B: 30, A: 255}
	case m.buttonHovered:
		bg = color.RGBA{R: 0, G: 90, B: 45, A: 255}
	default:
		bg = color.RGBA{R: 0, G: 70, B: 35, A: 255}
	}
	vector.DrawFilledRect(screen, buttonX, buttonY, buttonWidth, buttonHeight, bg, false)
	vector.StrokeRect(screen, buttonX, buttonY, buttonWidth, buttonHeight, 2, gridMajorColor, false)
	ebitenutil.DebugPrintAt(screen, "Rhythm...", buttonX+28, buttonY+9)
}

func (m *Monitor) drawStatus(screen *ebiten.Image) {
	elapsed := time.Duration(float64(m.elapsedTicks)/ticksPerSecond) * time.Second

	status := fmt.Sprintf("%s | set %d bpm | detected %d bpm | gain %.1f | noise %.3f | %s | session %.8s",
		pathology.DisplayName(m.cfg.Pathology),
		int(m.cfg.HeartRate),
		m.pulse.BPM(),
		m.cfg.Amplitude,
		m.cfg.Noise,
		formatDuration(elapsed),
		m.sessionID)
	if m.paused {
		status = "PAUSED | " + status
	}
	if m.lastErr != nil {
		status += " | Error: " + m.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 8)

	help := "P/click: rhythm  Up/Down: rate  +/-: gain  N/M: noise  B: beep  Space: pause  Esc/Q: quit"
	ebitenutil.DebugPrintAt(screen, help, 12, m.view.WindowHeight-16)
}

func (m *Monitor) Layout(outsideWidth, outsideHeight int) (int, int) {
	return m.view.WindowWidth, m.view.WindowHeight
}
