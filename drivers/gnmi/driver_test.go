package gnmi

import (
	"testing"

	gnmipb "github.com/openconfig/gnmi/proto/gnmi"

	"github.com/grasshopper-automation/oirtest/types"
)

func TestOperStatusPath(t *testing.T) {
	p := operStatusPath("et-0/0/12")

	wantElems := []string{"interfaces", "interface", "state", "oper-status"}
	if len(p.Elem) != len(wantElems) {
		t.Fatalf("path has %d elems, want %d", len(p.Elem), len(wantElems))
	}
	for i, name := range wantElems {
		if p.Elem[i].Name != name {
			t.Errorf("elem %d = %q, want %q", i, p.Elem[i].Name, name)
		}
	}
	if got := p.Elem[1].Key["name"]; got != "et-0/0/12" {
		t.Errorf("interface key = %q, want et-0/0/12", got)
	}
}

func TestLinkFromTypedValue(t *testing.T) {
	tests := []struct {
		name string
		tv   *gnmipb.TypedValue
		want types.LinkState
	}{
		{
			name: "string UP",
			tv:   &gnmipb.TypedValue{Value: &gnmipb.TypedValue_StringVal{StringVal: "UP"}},
			want: types.LinkUp,
		},
		{
			name: "string DOWN",
			tv:   &gnmipb.TypedValue{Value: &gnmipb.TypedValue_StringVal{StringVal: "DOWN"}},
			want: types.LinkDown,
		},
		{
			name: "lowercase up",
			tv:   &gnmipb.TypedValue{Value: &gnmipb.TypedValue_StringVal{StringVal: "up"}},
			want: types.LinkUp,
		},
		{
			name: "json ietf quoted",
			tv:   &gnmipb.TypedValue{Value: &gnmipb.TypedValue_JsonIetfVal{JsonIetfVal: []byte(`"UP"`)}},
			want: types.LinkUp,
		},
		{
			name: "json lower layer down",
			tv:   &gnmipb.TypedValue{Value: &gnmipb.TypedValue_JsonVal{JsonVal: []byte(`"LOWER_LAYER_DOWN"`)}},
			want: types.LinkDown,
		},
		{
			name: "ascii NOT_PRESENT",
			tv:   &gnmipb.TypedValue{Value: &gnmipb.TypedValue_AsciiVal{AsciiVal: "NOT_PRESENT"}},
			want: types.LinkDown,
		},
		{
			name: "nil value",
			tv:   nil,
			want: "",
		},
		{
			name: "numeric value unusable",
			tv:   &gnmipb.TypedValue{Value: &gnmipb.TypedValue_IntVal{IntVal: 1}},
			want: "",
		},
		{
			name: "empty string unusable",
			tv:   &gnmipb.TypedValue{Value: &gnmipb.TypedValue_StringVal{StringVal: ""}},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := linkFromTypedValue(tt.tv); got != tt.want {
				t.Errorf("linkFromTypedValue() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewDriverDefaults(t *testing.T) {
	if _, err := NewDriver(nil); err == nil {
		t.Error("NewDriver(nil) expected error")
	}

	d, err := NewDriver(&types.DeviceConfig{Address: "192.0.2.1"})
	if err != nil {
		t.Fatalf("NewDriver() error: %v", err)
	}
	if d.config.Port != 9339 {
		t.Errorf("default port = %d, want 9339", d.config.Port)
	}
}
