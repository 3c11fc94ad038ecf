package render

import (
	"context"
	"errors"
	"testing"
)

func TestConvertWithoutBinary(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	if ConverterAvailable() {
		t.Fatal("ConverterAvailable() = true with empty PATH")
	}
	if _, err := ToPNG(context.Background(), []byte("<svg/>"), 2); !errors.Is(err, ErrConverterMissing) {
		t.Errorf("ToPNG() error = %v, want ErrConverterMissing", err)
	}
	if _, err := ToPDF(context.Background(), []byte("<svg/>")); !errors.Is(err, ErrConverterMissing) {
		t.Errorf("ToPDF() error = %v, want ErrConverterMissing", err)
	}
}
