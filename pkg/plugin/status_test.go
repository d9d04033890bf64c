package plugin

import "testing"

func TestStatusTable(t *testing.T) {
	tests := []struct {
		status Status
		word   string
		code   int
	}{
		{StatusOK, "OK", 0},
		{StatusWarning, "WARNING", 1},
		{StatusCritical, "CRITICAL", 2},
		{StatusUnknown, "UNKNOWN", 3},
		{StatusDependant, "DEPENDANT", 4},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.word {
			t.Errorf("String() = %q, want %q", got, tt.word)
		}
		if got := tt.status.ExitCode(); got != tt.code {
			t.Errorf("ExitCode() = %d, want %d", got, tt.code)
		}
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"OK", StatusOK, false},
		{"critical", StatusCritical, false},
		{" Warning ", StatusWarning, false},
		{"2", StatusCritical, false},
		{"4", StatusDependant, false},
		{"5", StatusUnknown, true},
		{"-1", StatusUnknown, true},
		{"bogus", StatusUnknown, true},
	}

	for _, tt := range tests {
		got, err := ParseStatus(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStatus(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseStatus(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOutcomeConstructors(t *testing.T) {
	tests := []struct {
		got  Outcome
		want Outcome
	}{
		{OKf("all %d services up", 3), Outcome{StatusOK, "all 3 services up"}},
		{Warningf("disk at %d%%", 85), Outcome{StatusWarning, "disk at 85%"}},
		{Criticalf("down"), Outcome{StatusCritical, "down"}},
		{Unknownf("no data"), Outcome{StatusUnknown, "no data"}},
		{Dependantf("waiting on %s", "db"), Outcome{StatusDependant, "waiting on db"}},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %+v, want %+v", tt.got, tt.want)
		}
	}
}
