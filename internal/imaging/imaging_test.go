package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
)

func createTestJPEG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}
	var buf bytes.Buffer
	jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90})
	return buf.Bytes()
}

func createTestPNG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{0, 0, 255, 255})
		}
	}
	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}

func TestProcessJPEG(t *testing.T) {
	data := createTestJPEG(100, 100)
	photo, err := Process(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Process JPEG: %v", err)
	}
	if photo.MIME != "image/jpeg" {
		t.Errorf("expected image/jpeg, got %s", photo.MIME)
	}
	if len(photo.Data) == 0 {
		t.Error("expected non-empty data")
	}
}

func TestProcessPNG(t *testing.T) {
	data := createTestPNG(100, 100)
	photo, err := Process(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Process PNG: %v", err)
	}
	if photo.MIME != "image/jpeg" {
		t.Errorf("expected image/jpeg (always outputs JPEG), got %s", photo.MIME)
	}
}

func TestProcessDownscalePreservesAspect(t *testing.T) {
	data := createTestJPEG(2048, 1024)
	photo, err := Process(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Process large image: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(photo.Data))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != MaxDimension || bounds.Dy() != MaxDimension/2 {
		t.Errorf("expected %dx%d, got %dx%d", MaxDimension, MaxDimension/2, bounds.Dx(), bounds.Dy())
	}
}

func TestProcessSmallImageNotUpscaled(t *testing.T) {
	data := createTestJPEG(50, 50)
	photo, err := Process(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Process small image: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(photo.Data))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 50 || bounds.Dy() != 50 {
		t.Errorf("small image should not be resized: got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestProcessInvalidFormat(t *testing.T) {
	_, err := Process(bytes.NewReader([]byte("not an image")))
	if err == nil {
		t.Error("expected error for invalid format")
	}
}

func TestProcessGIFRejected(t *testing.T) {
	_, err := Process(bytes.NewReader([]byte("GIF89a...")))
	if err == nil {
		t.Error("expected error for GIF")
	}
}

func TestPhotoDataURLRoundTrip(t *testing.T) {
	photo, err := Process(bytes.NewReader(createTestPNG(10, 10)))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	url := photo.DataURL()
	if !IsDataURL(url) {
		t.Fatalf("expected data URL, got %q", url[:20])
	}

	data, mime, err := DecodeDataURL(url)
	if err != nil {
		t.Fatalf("DecodeDataURL: %v", err)
	}
	if mime != "image/jpeg" {
		t.Errorf("expected image/jpeg, got %q", mime)
	}
	if !bytes.Equal(data, photo.Data) {
		t.Error("payload did not round-trip")
	}
}

func TestDecodeDataURLErrors(t *testing.T) {
	tests := []string{
		"https://picsum.photos/400/400",
		"data:image/png;base64",
		"data:image/png,plain",
		"data:image/png;base64,!!!",
	}
	for _, in := range tests {
		if _, _, err := DecodeDataURL(in); err == nil {
			t.Errorf("DecodeDataURL(%q): expected error", in)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got, err := Normalize(""); err != nil || got != "" {
		t.Errorf("Normalize(\"\") = %q, %v", got, err)
	}

	link := "https://picsum.photos/400/400?random=1"
	if got, err := Normalize(link); err != nil || got != link {
		t.Errorf("expected link kept, got %q, %v", got, err)
	}

	got, err := Normalize(EncodeDataURL(createTestPNG(20, 20), "image/png"))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if _, mime, _ := DecodeDataURL(got); mime != "image/jpeg" {
		t.Errorf("expected inline image re-encoded as JPEG, got %q", mime)
	}

	for _, bad := range []string{"ftp://example.com/a.jpg", "data:image/png;base64,!!!", EncodeDataURL([]byte("GIF89a"), "image/gif")} {
		if _, err := Normalize(bad); err == nil {
			t.Errorf("Normalize(%q): expected error", bad)
		}
	}
}

func TestServe(t *testing.T) {
	rr := httptest.NewRecorder()
	Serve(rr, httptest.NewRequest("GET", "/img", nil), EncodeDataURL([]byte{1, 2, 3}, "image/jpeg"))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "image/jpeg" {
		t.Errorf("expected image/jpeg, got %q", ct)
	}
	if !bytes.Equal(rr.Body.Bytes(), []byte{1, 2, 3}) {
		t.Errorf("unexpected body %v", rr.Body.Bytes())
	}

	rr = httptest.NewRecorder()
	Serve(rr, httptest.NewRequest("GET", "/img", nil), "https://picsum.photos/400/400?random=2")
	if rr.Code != http.StatusFound {
		t.Errorf("expected redirect for link, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	Serve(rr, httptest.NewRequest("GET", "/img", nil), "")
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404 for empty payload, got %d", rr.Code)
	}
}

func TestServeRefusesNonImageTypes(t *testing.T) {
	for _, mime := range []string{"text/html", "image/svg+xml", "application/javascript"} {
		rr := httptest.NewRecorder()
		Serve(rr, httptest.NewRequest("GET", "/img", nil), EncodeDataURL([]byte("<script>alert(1)</script>"), mime))
		if rr.Code != http.StatusUnsupportedMediaType {
			t.Errorf("%s: expected 415, got %d", mime, rr.Code)
		}
		if bytes.Contains(rr.Body.Bytes(), []byte("<script>")) {
			t.Errorf("%s: payload written to response", mime)
		}
	}
}
