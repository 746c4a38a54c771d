package imagegen

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"sync"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

var (
	fontLight   font.Face
	fontRegular font.Face
	fontOnce    sync.Once
)

// loadFaces prepares the type faces for share cards. When no font file
// is configured (or it fails to parse) the fixed bitmap face keeps card
// generation working, just less pretty.
func loadFaces() {
	fontOnce.Do(func() {
		fontLight = basicfont.Face7x13
		fontRegular = basicfont.Face7x13

		path := os.Getenv("SHARE_CARD_FONT")
		if path == "" {
			return
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return
		}
		parsed, err := opentype.Parse(data)
		if err != nil {
			return
		}

		if light, err := opentype.NewFace(parsed, &opentype.FaceOptions{
			Size:    110,
			DPI:     72,
			Hinting: font.HintingFull,
		}); err == nil {
			fontLight = light
		}
		if regular, err := opentype.NewFace(parsed, &opentype.FaceOptions{
			Size:    36,
			DPI:     72,
			Hinting: font.HintingFull,
		}); err == nil {
			fontRegular = regular
		}
	})
}

// ShareCardData contains the dynamic data for a scenario share card.
type ShareCardData struct {
	ScenarioName         string
	EmissionReductionPct float64
	AvoidedTons          float64
	HorizonYears         int
}

// ShareCardCache caches the most recent card for a short period.
type ShareCardCache struct {
	mu        sync.RWMutex
	key       string
	data      []byte
	expiresAt time.Time
	cacheTTL  time.Duration
}

// NewShareCardCache creates a share card cache with the specified TTL.
func NewShareCardCache(ttl time.Duration) *ShareCardCache {
	return &ShareCardCache{
		cacheTTL: ttl,
	}
}

// Get returns the cached card for the key if still valid.
func (c *ShareCardCache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.data == nil || c.key != key || time.Now().After(c.expiresAt) {
		return nil, false
	}
	return c.data, true
}

// Set stores a new card in the cache.
func (c *ShareCardCache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.key = key
	c.data = data
	c.expiresAt = time.Now().Add(c.cacheTTL)
}

// CardWidth and CardHeight are the standard Open Graph image dimensions.
const (
	CardWidth  = 1200
	CardHeight = 630
)

// GenerateShareCard composites an urban impact image with the scenario's
// headline numbers. A nil or undecodable background falls back to a
// plain gradient card.
func GenerateShareCard(background []byte, data ShareCardData) ([]byte, error) {
	loadFaces()

	dst := image.NewRGBA(image.Rect(0, 0, CardWidth, CardHeight))

	src, _, err := image.Decode(bytes.NewReader(background))
	if err != nil {
		drawGradientBackground(dst)
	} else {
		drawCoverScaled(dst, src)
		drawBottomShade(dst)
	}

	drawCardText(dst, data)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encode share card: %w", err)
	}

	return buf.Bytes(), nil
}

// drawCoverScaled fills dst with src using a center crop.
func drawCoverScaled(dst *image.RGBA, src image.Image) {
	srcBounds := src.Bounds()
	srcW, srcH := srcBounds.Dx(), srcBounds.Dy()

	scaleX := float64(CardWidth) / float64(srcW)
	scaleY := float64(CardHeight) / float64(srcH)
	scale := scaleX
	if scaleY > scaleX {
		scale = scaleY
	}

	scaledW := int(float64(srcW) * scale)
	scaledH := int(float64(srcH) * scale)
	offsetX := (scaledW - CardWidth) / 2
	offsetY := (scaledH - CardHeight) / 2

	for y := 0; y < CardHeight; y++ {
		for x := 0; x < CardWidth; x++ {
			srcX := int(float64(x+offsetX) / scale)
			srcY := int(float64(y+offsetY) / scale)
			if srcX >= 0 && srcX < srcW && srcY >= 0 && srcY < srcH {
				dst.Set(x, y, src.At(srcBounds.Min.X+srcX, srcBounds.Min.Y+srcY))
			}
		}
	}
}

// drawBottomShade darkens the lower band so the numbers stay readable.
func drawBottomShade(img *image.RGBA) {
	bounds := img.Bounds()
	shadeHeight := 300

	for y := bounds.Max.Y - shadeHeight; y < bounds.Max.Y; y++ {
		progress := float64(y-(bounds.Max.Y-shadeHeight)) / float64(shadeHeight)
		progress = progress * progress
		alpha := progress * 0.85

		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			orig := img.RGBAAt(x, y)
			orig.R = uint8(float64(orig.R) * (1 - alpha))
			orig.G = uint8(float64(orig.G) * (1 - alpha))
			orig.B = uint8(float64(orig.B) * (1 - alpha))
			img.SetRGBA(x, y, orig)
		}
	}
}

// drawGradientBackground paints a deep green-to-teal fallback backdrop.
func drawGradientBackground(img *image.RGBA) {
	for y := 0; y < CardHeight; y++ {
		progress := float64(y) / float64(CardHeight)
		r := uint8(12 + progress*10)
		g := uint8(40 + progress*25)
		b := uint8(32 + progress*30)
		for x := 0; x < CardWidth; x++ {
			img.SetRGBA(x, y, color.RGBA{r, g, b, 255})
		}
	}
}

// drawCardText draws the scenario numbers on the card.
func drawCardText(img *image.RGBA, data ShareCardData) {
	white := color.RGBA{255, 255, 255, 255}
	lightGray := color.RGBA{205, 215, 210, 255}

	reduction := fmt.Sprintf("-%.0f%% CO2", data.EmissionReductionPct)
	drawText(img, reduction, 60, CardHeight-180, white, fontLight)

	detail := fmt.Sprintf("%.0f tons avoided over %d years", data.AvoidedTons, data.HorizonYears)
	drawText(img, detail, 60, CardHeight-80, lightGray, fontRegular)

	footer := "climate policy simulator"
	if data.ScenarioName != "" {
		footer = data.ScenarioName + " · " + footer
	}
	drawText(img, footer, 60, CardHeight-30, lightGray, fontRegular)
}

// drawText draws text at the given position using the specified font face.
func drawText(img *image.RGBA, text string, x, y int, col color.Color, face font.Face) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}
