package utils

import (
	"academia/config"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	_ "image/jpeg"
	_ "image/png"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/google/uuid"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	certificateWidth  = 1600
	certificateHeight = 1130
)

// CertificateData carries everything drawn onto a certificate
type CertificateData struct {
	LearnerName       string
	Document          string
	CourseTitle       string
	Instructor        string
	CompletionDate    time.Time
	CertificateNumber string
	TemplateURL       string
}

// RenderCertificate draws the learner's certificate and writes it under the
// upload directory. A course template image is used as the background when
// configured; otherwise a default layout is drawn. Returns the public URL.
func RenderCertificate(data CertificateData) (string, error) {
	dc := gg.NewContext(certificateWidth, certificateHeight)

	if data.TemplateURL != "" {
		if tmpl, err := loadTemplateImage(data.TemplateURL); err == nil {
			drawTemplate(dc, tmpl)
		} else {
			drawDefaultBackground(dc)
		}
	} else {
		drawDefaultBackground(dc)
	}

	face, err := loadCertificateFace(52)
	if err != nil {
		return "", err
	}
	smallFace, err := loadCertificateFace(28)
	if err != nil {
		return "", err
	}

	// Text fields sit at fixed proportional coordinates so any template
	// size lines up
	cx := float64(certificateWidth) / 2

	dc.SetRGB(0.1, 0.15, 0.25)
	dc.SetFontFace(face)
	dc.DrawStringAnchored(data.LearnerName, cx, float64(certificateHeight)*0.42, 0.5, 0.5)
	dc.DrawStringAnchored(data.CourseTitle, cx, float64(certificateHeight)*0.56, 0.5, 0.5)

	dc.SetFontFace(smallFace)
	if data.Document != "" {
		dc.DrawStringAnchored("Documento: "+data.Document, cx, float64(certificateHeight)*0.48, 0.5, 0.5)
	}
	if data.Instructor != "" {
		dc.DrawStringAnchored("Instructor: "+data.Instructor, cx, float64(certificateHeight)*0.66, 0.5, 0.5)
	}
	dc.DrawStringAnchored("Fecha de finalización: "+data.CompletionDate.Format("02/01/2006"), cx, float64(certificateHeight)*0.72, 0.5, 0.5)
	dc.DrawStringAnchored("No. "+data.CertificateNumber, cx, float64(certificateHeight)*0.92, 0.5, 0.5)

	destDir := filepath.Join(config.AppConfig.UploadDir, "certificates")
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	filename := uuid.NewString() + ".png"
	if err := dc.SavePNG(filepath.Join(destDir, filename)); err != nil {
		return "", err
	}

	return "/uploads/certificates/" + filename, nil
}

func drawDefaultBackground(dc *gg.Context) {
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// Border frame
	dc.SetRGB(0.11, 0.23, 0.36)
	dc.SetLineWidth(12)
	dc.DrawRectangle(40, 40, float64(certificateWidth)-80, float64(certificateHeight)-80)
	dc.Stroke()

	face, err := loadCertificateFace(64)
	if err != nil {
		return
	}
	dc.SetFontFace(face)
	dc.DrawStringAnchored("CERTIFICADO DE FINALIZACIÓN", float64(certificateWidth)/2, float64(certificateHeight)*0.2, 0.5, 0.5)

	small, err := loadCertificateFace(30)
	if err != nil {
		return
	}
	dc.SetFontFace(small)
	dc.DrawStringAnchored("Academia Santafé certifica que", float64(certificateWidth)/2, float64(certificateHeight)*0.32, 0.5, 0.5)
	dc.DrawStringAnchored("completó satisfactoriamente el curso", float64(certificateWidth)/2, float64(certificateHeight)*0.5, 0.5, 0.5)
}

func drawTemplate(dc *gg.Context, tmpl image.Image) {
	bounds := tmpl.Bounds()
	sx := float64(certificateWidth) / float64(bounds.Dx())
	sy := float64(certificateHeight) / float64(bounds.Dy())
	dc.Push()
	dc.Scale(sx, sy)
	dc.DrawImage(tmpl, 0, 0)
	dc.Pop()
}

// loadTemplateImage resolves a course's template URL to a local upload path
func loadTemplateImage(templateURL string) (image.Image, error) {
	local := filepath.Join(".", "public", filepath.FromSlash(templateURL))
	f, err := os.Open(local)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding certificate template: %w", err)
	}
	return img, nil
}

// loadCertificateFace loads the configured TTF, falling back to the bundled
// Go font so rendering never fails for lack of an asset.
func loadCertificateFace(points float64) (font.Face, error) {
	if path := config.AppConfig.CertificateFont; path != "" {
		if fontBytes, err := os.ReadFile(path); err == nil {
			if f, err := truetype.Parse(fontBytes); err == nil {
				return truetype.NewFace(f, &truetype.Options{Size: points}), nil
			}
		}
	}

	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{Size: points}), nil
}
