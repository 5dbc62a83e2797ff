package grobid

import (
	"bytes"
	"mime/multipart"
	"reflect"
	"testing"
)

func boolPtr(b bool) *bool { return &b }

func TestForm_Fields(t *testing.T) {
	tests := []struct {
		name string
		form Form
		want [][2]string
	}{
		{
			name: "defaults send nothing",
			form: Form{},
		},
		{
			name: "segment sentences only when true",
			form: Form{SegmentSentences: boolPtr(false)},
		},
		{
			name: "all options",
			form: Form{
				SegmentSentences:       boolPtr(true),
				ConsolidateHeader:      intPtr(0),
				ConsolidateCitations:   intPtr(2),
				IncludeRawCitations:    boolPtr(true),
				IncludeRawAffiliations: boolPtr(false),
				TEICoordinates:         []string{"ref", "biblStruct"},
			},
			want: [][2]string{
				{"segmentSentences", "1"},
				{"consolidateHeader", "0"},
				{"consolidateCitations", "2"},
				{"includeRawCitations", "1"},
				{"includeRawAffiliations", "0"},
				{"teiCoordinates", "ref"},
				{"teiCoordinates", "biblStruct"},
			},
		},
		{
			name: "out of range consolidation dropped",
			form: Form{ConsolidateHeader: intPtr(3), ConsolidateCitations: intPtr(-1)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.form.fields(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("fields() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestForm_Write(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	form := Form{
		File:           File{Payload: []byte("pdf")},
		TEICoordinates: []string{"ref", "figure"},
	}
	if err := form.Write(mw); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	mf, err := multipart.NewReader(&buf, mw.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("ReadForm: %v", err)
	}
	files := mf.File["input"]
	if len(files) != 1 || files[0].Filename != "input.pdf" {
		t.Errorf("input files = %+v", files)
	}
	if got := mf.Value["teiCoordinates"]; !reflect.DeepEqual(got, []string{"ref", "figure"}) {
		t.Errorf("teiCoordinates = %v", got)
	}
}
