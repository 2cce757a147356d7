package cms

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"golang.org/x/image/draw"
)

const (
	coverWidth  = 1200
	coverHeight = 630
	thumbWidth  = 400
)

// demoPost is one entry of the built-in demo content set.
type demoPost struct {
	title   string
	excerpt string
	body    string
	tags    string
	status  string
	from    color.RGBA
	to      color.RGBA
}

var demoPosts = []demoPost{
	{
		title:   "TON Wallet Integration Guide",
		excerpt: "A walkthrough of connecting Telegram Wallet to your mini-app.",
		body:    "<h2>Getting started</h2><p>Telegram Wallet exposes a connect flow every mini-app can reuse.</p>",
		tags:    "ton,wallet,guide",
		status:  "published",
		from:    color.RGBA{R: 0x0f, G: 0x62, B: 0xfe, A: 0xff},
		to:      color.RGBA{R: 0x78, G: 0xa9, B: 0xff, A: 0xff},
	},
	{
		title:   "Mini-Apps: State of the Ecosystem",
		excerpt: "Active wallets keep climbing and mini-apps are driving the growth.",
		body:    "<h2>The numbers</h2><p>Monthly active wallets grew through the whole quarter.</p>",
		tags:    "mini-apps,ecosystem",
		status:  "published",
		from:    color.RGBA{R: 0x8a, G: 0x3f, B: 0xfc, A: 0xff},
		to:      color.RGBA{R: 0xbe, G: 0x95, B: 0xff, A: 0xff},
	},
	{
		title:   "Drafting the Next Airdrop Review",
		excerpt: "Working notes, unpublished.",
		body:    "<p>Outline only for now.</p>",
		tags:    "airdrops",
		status:  "draft",
		from:    color.RGBA{R: 0x00, G: 0x7d, B: 0x79, A: 0xff},
		to:      color.RGBA{R: 0x3d, G: 0xdb, B: 0xd9, A: 0xff},
	},
}

// SeedDemo populates an empty database with demo posts and generates
// placeholder cover images in the uploads directory, so a fresh checkout
// serves a working site. It is a no-op when posts already exist.
func SeedDemo(store *Store, uploads *Uploads) error {
	existing, err := store.ListPosts("")
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, d := range demoPosts {
		cover := renderGradient(coverWidth, coverHeight, d.from, d.to)
		coverPNG, err := encodePNG(cover)
		if err != nil {
			return fmt.Errorf("render cover: %w", err)
		}
		stored, err := uploads.Store("cover.png", coverPNG)
		if err != nil {
			return fmt.Errorf("store cover: %w", err)
		}

		thumbPNG, err := encodePNG(scaleToWidth(cover, thumbWidth))
		if err != nil {
			return fmt.Errorf("render thumbnail: %w", err)
		}
		thumb, err := uploads.Store("cover-thumb.png", thumbPNG)
		if err != nil {
			return fmt.Errorf("store thumbnail: %w", err)
		}

		body := d.body + fmt.Sprintf(`<p><img src=%q alt=""></p>`, thumb.URL)
		if _, err := store.CreatePost(PostInput{
			Title:       d.title,
			CoverURL:    stored.URL,
			Excerpt:     d.excerpt,
			ContentHTML: body,
			Tags:        d.tags,
			Status:      d.status,
		}); err != nil {
			return fmt.Errorf("seed %q: %w", d.title, err)
		}
	}
	return nil
}

// renderGradient draws a horizontal gradient between two colors.
func renderGradient(w, h int, from, to color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		t := float64(x) / float64(w-1)
		col := color.RGBA{
			R: lerp(from.R, to.R, t),
			G: lerp(from.G, to.G, t),
			B: lerp(from.B, to.B, t),
			A: 0xff,
		}
		for y := 0; y < h; y++ {
			img.SetRGBA(x, y, col)
		}
	}
	return img
}

// scaleToWidth resamples img down to the given width, keeping aspect ratio.
func scaleToWidth(img image.Image, width int) *image.RGBA {
	bounds := img.Bounds()
	height := bounds.Dy() * width / bounds.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}
