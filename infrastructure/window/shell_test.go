package window

import (
	"errors"
	"testing"
)

func TestShellLocator_Darwin(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		err     error
		want    Region
		wantErr bool
	}{
		{"valid", "100, 50, 800, 600\n", nil, Region{X: 100, Y: 50, Width: 800, Height: 600}, false},
		{"command failed", "", errors.New("no such process"), Region{}, true},
		{"malformed", "not coordinates", nil, Region{}, true},
		{"zero size", "0, 0, 0, 0", nil, Region{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewShellLocator("Uma Musume")
			l.run = func(name string, args ...string) (string, error) {
				if name != "osascript" {
					t.Errorf("command = %s, want osascript", name)
				}
				return tt.out, tt.err
			}

			r, err := l.locateDarwin()
			if tt.wantErr {
				if err == nil {
					t.Error("locateDarwin() expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("locateDarwin() error = %v", err)
			}
			if r != tt.want {
				t.Errorf("locateDarwin() = %+v, want %+v", r, tt.want)
			}
		})
	}
}

func TestShellLocator_Linux(t *testing.T) {
	wmctrlOut := "" +
		"0x01000003  0 0    0    1920 30   host Panel\n" +
		"0x02000004  0 240  120  1280 720  host Uma Musume Pretty Derby\n" +
		"0x03000005  0 0    0    800  600  host Terminal\n"

	l := NewShellLocator("uma musume")
	l.run = func(name string, args ...string) (string, error) {
		if name != "wmctrl" {
			t.Errorf("command = %s, want wmctrl", name)
		}
		return wmctrlOut, nil
	}

	r, err := l.locateLinux()
	if err != nil {
		t.Fatalf("locateLinux() error = %v", err)
	}
	want := Region{X: 240, Y: 120, Width: 1280, Height: 720}
	if r != want {
		t.Errorf("locateLinux() = %+v, want %+v", r, want)
	}
}

func TestShellLocator_LinuxNoMatch(t *testing.T) {
	l := NewShellLocator("uma musume")
	l.run = func(name string, args ...string) (string, error) {
		return "0x01  0 0 0 100 100 host Something Else\n", nil
	}

	if _, err := l.locateLinux(); !errors.Is(err, ErrWindowNotFound) {
		t.Errorf("locateLinux() error = %v, want ErrWindowNotFound", err)
	}
}
