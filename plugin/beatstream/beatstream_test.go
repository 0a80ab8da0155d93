// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package beatstream

import (
	"context"
	"testing"

	"github.com/hiiragi-go/hiiragi/node"
	"github.com/hiiragi-go/hiiragi/plugin"
)

func TestPluginSelfRegisters(t *testing.T) {
	h, ok := plugin.Default.Lookup(gameCode, "services.get")
	if !ok {
		t.Fatal("services.get not registered on plugin.Default; missing init() self-registration?")
	}
	resp, err := h(context.Background(), node.Void("call"))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if resp.Child("services") == nil {
		t.Fatalf("got %+v", resp)
	}
}

func TestGetServicesShape(t *testing.T) {
	resp, err := getServices(context.Background(), node.Void("call"))
	if err != nil {
		t.Fatalf("getServices: %v", err)
	}
	services := resp.Child("services")
	if services == nil {
		t.Fatal("missing services child")
	}
	if services.Attribute("method") != "get" || services.Attribute("status") != "0" {
		t.Fatalf("got attrs %+v", services.Attributes())
	}

	var names []string
	for _, item := range services.Children() {
		names = append(names, item.Attribute("name"))
	}
	if len(names) != len(localServiceURLs)+2 {
		t.Fatalf("got %d items, want %d", len(names), len(localServiceURLs)+2)
	}
	if names[0] != "ntp" || names[1] != "keepalive" {
		t.Fatalf("ntp/keepalive must lead the item list, got %v", names[:2])
	}
}

func TestAliveTrackerDefaultsEcflag(t *testing.T) {
	resp, err := aliveTracker(context.Background(), node.Void("call"))
	if err != nil {
		t.Fatalf("aliveTracker: %v", err)
	}
	tracker := resp.Child("pcbtracker")
	if tracker == nil {
		t.Fatal("missing pcbtracker child")
	}
	if tracker.Attribute("ecenable") != "1" {
		t.Fatalf("ecenable = %q, want default \"1\"", tracker.Attribute("ecenable"))
	}
}

func TestAliveTrackerHonorsEcflag(t *testing.T) {
	req := node.Void("call")
	req.SetAttribute("ecflag", "0")
	resp, err := aliveTracker(context.Background(), req)
	if err != nil {
		t.Fatalf("aliveTracker: %v", err)
	}
	if got := resp.Child("pcbtracker").Attribute("ecenable"); got != "0" {
		t.Fatalf("ecenable = %q, want \"0\"", got)
	}
}

func TestGetFacilityShape(t *testing.T) {
	resp, err := getFacility(context.Background(), node.Void("call"))
	if err != nil {
		t.Fatalf("getFacility: %v", err)
	}
	facility := resp.Child("facility")
	if facility == nil {
		t.Fatal("missing facility child")
	}
	loc := facility.Child("location")
	if loc == nil || loc.Child("id").Value().Str != "ea" {
		t.Fatalf("location malformed: %+v", loc)
	}
	portfw := facility.Child("portfw")
	if portfw == nil || portfw.Child("globalip").Value().IP4.String() != "127.0.0.1" {
		t.Fatalf("portfw malformed: %+v", portfw)
	}
}
