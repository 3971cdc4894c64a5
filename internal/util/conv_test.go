package util

import "testing"

func TestParseOptionalFloat(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		isNil   bool
		wantErr bool
	}{
		{in: "", isNil: true},
		{in: "19.99", want: 19.99},
		{in: "0", want: 0},
		{in: "abc", wantErr: true},
		{in: "NaN", wantErr: true},
		{in: "Inf", wantErr: true},
		{in: "-Inf", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOptionalFloat(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("want error, got %v", *got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.isNil {
				if got != nil {
					t.Fatalf("want nil, got %v", *got)
				}
				return
			}
			if got == nil || *got != tt.want {
				t.Fatalf("want=%v got=%v", tt.want, got)
			}
		})
	}
}

func TestParseOptionalID(t *testing.T) {
	tests := []struct {
		in      string
		want    uint
		wantErr bool
	}{
		{in: "", want: 0},
		{in: "7", want: 7},
		{in: "0", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "abc", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseOptionalID(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("%q: wantErr=%v err=%v", tt.in, tt.wantErr, err)
		}
		if got != tt.want {
			t.Fatalf("%q: want=%d got=%d", tt.in, tt.want, got)
		}
	}
}
