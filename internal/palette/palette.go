package palette

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// severityColors maps the well-known level names to fixed colors so error
// rows look like errors in every session. Matched case-insensitively.
// Values come from the default terminal theme.
var severityColors = map[string]lipgloss.Color{
	"error":   lipgloss.Color("#DC2626"),
	"fatal":   lipgloss.Color("#991B1B"),
	"warn":    lipgloss.Color("#D97706"),
	"warning": lipgloss.Color("#D97706"),
	"info":    lipgloss.Color("#0891B2"),
	"debug":   lipgloss.Color("#6B7280"),
	"trace":   lipgloss.Color("#9CA3AF"),
}

// HistogramColor is the single series color shared by all time buckets.
const HistogramColor = lipgloss.Color("#3B82F6")

// Palette assigns display colors to group values. Well-known severity
// names resolve to fixed colors; everything else gets a generated color
// cached for the lifetime of the process so legends stay stable across
// recomputation.
type Palette struct {
	mu    sync.Mutex
	rng   *rand.Rand
	cache map[string]lipgloss.Color
}

// New creates a palette with a time-seeded generator.
func New() *Palette {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed creates a palette with a deterministic generator. Tests use
// this to make generated colors reproducible.
func NewWithSeed(seed int64) *Palette {
	return &Palette{
		rng:   rand.New(rand.NewSource(seed)),
		cache: make(map[string]lipgloss.Color),
	}
}

// Resolve returns the stable color for a group value. The check-then-
// generate step is atomic per key so concurrent grid and chart passes never
// mint two different colors for the same new value.
func (p *Palette) Resolve(value string) lipgloss.Color {
	key := strings.ToLower(strings.TrimSpace(value))
	if c, ok := severityColors[key]; ok {
		return c
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if c, ok := p.cache[key]; ok {
		return c
	}
	c := p.generate()
	p.cache[key] = c
	return c
}

// Size returns the number of generated colors currently cached.
func (p *Palette) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.cache)
}

// generate picks a saturated, mid-lightness color: hue anywhere on the
// circle, saturation 0.7-1.0, lightness 0.4-0.6. That keeps every group
// readable against a light background.
func (p *Palette) generate() lipgloss.Color {
	h := p.rng.Float64() * 360.0
	s := 0.7 + p.rng.Float64()*0.3
	l := 0.4 + p.rng.Float64()*0.2
	return lipgloss.Color(colorful.Hsl(h, s, l).Hex())
}
