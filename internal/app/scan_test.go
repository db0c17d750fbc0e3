package app

import (
	"testing"

	"github.com/diegonavarro95/parkify/internal/domain"
)

func TestDecodeScan(t *testing.T) {
	t.Parallel()

	const id = "7f9c24e5-2f31-4a1b-9d52-1a2b3c4d5e6f"

	cases := []struct {
		name    string
		payload string
		want    string
		wantErr bool
	}{
		{name: "bare id", payload: id, want: id},
		{name: "id with whitespace", payload: "  " + id + "\n", want: id},
		{name: "json object", payload: `{"id":"` + id + `"}`, want: id},
		{name: "json object with extras", payload: `{"id":"` + id + `","folio":"PV-ABCD2345"}`, want: id},
		{name: "empty", payload: "", wantErr: true},
		{name: "not a uuid", payload: "PV-ABCD2345", wantErr: true},
		{name: "malformed json", payload: `{"id":`, wantErr: true},
		{name: "json without id", payload: `{"folio":"PV-ABCD2345"}`, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeScan(tc.payload)
			if tc.wantErr {
				if err != domain.ErrInvalidScanPayload {
					t.Fatalf("expected ErrInvalidScanPayload, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}
