package applog

import "testing"

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Level
		wantErr bool
	}{
		{name: "none", in: "NONE", want: LevelNone},
		{name: "none lower", in: "none", want: LevelNone},
		{name: "error", in: "ERROR", want: LevelError},
		{name: "warning", in: "WARNING", want: LevelWarning},
		{name: "warn alias", in: "warn", want: LevelWarning},
		{name: "info", in: "info", want: LevelInfo},
		{name: "debug", in: "DEBUG", want: LevelDebug},
		{name: "unknown", in: "VERBOSE", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseLevel(%q) returned nil error, want one", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLevel(%q) returned error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLoggerGating(t *testing.T) {
	tests := []struct {
		name       string
		level      Level
		logAt      Level
		wantLogged bool
	}{
		{name: "debug at debug threshold", level: LevelDebug, logAt: LevelDebug, wantLogged: true},
		{name: "debug at info threshold", level: LevelInfo, logAt: LevelDebug, wantLogged: false},
		{name: "error always at error threshold", level: LevelError, logAt: LevelError, wantLogged: true},
		{name: "error suppressed at none", level: LevelNone, logAt: LevelError, wantLogged: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.level)
			got := l.enabled(tt.logAt)
			if got != tt.wantLogged {
				t.Fatalf("enabled(%v) at threshold %v = %v, want %v", tt.logAt, tt.level, got, tt.wantLogged)
			}
		})
	}
}

func TestDiscardNeverPanics(t *testing.T) {
	Discard.Debugf("x")
	Discard.Infof("x")
	Discard.Warnf("x")
	Discard.Errorf("x")
}
