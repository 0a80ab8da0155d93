// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package beatstream is a worked-example plugin for the NBT game code,
// ported in meaning from plugins/BeatStream/plugin.py. It exercises node,
// binfmt, and xmlfmt end to end through the plugin registry.
package beatstream

import (
	"context"
	"net/netip"
	"strconv"
	"time"

	"github.com/hiiragi-go/hiiragi/node"
	"github.com/hiiragi-go/hiiragi/plugin"
)

// gameCode is this plugin's model prefix, matched against the left half of
// the `model` route parameter split on ":".
const gameCode = "NBT"

func init() {
	plugin.Register("Hiiragi BeatStream Plugin", registrar{})
}

type registrar struct{}

func (registrar) Load(reg *plugin.Registry) {
	reg.Dispatch(gameCode, "services.get", getServices)
	reg.Dispatch(gameCode, "pcbtracker.alive", aliveTracker)
	reg.Dispatch(gameCode, "message.get", getMessage)
	reg.Dispatch(gameCode, "facility.get", getFacility)
	reg.Dispatch(gameCode, "pcbevent.put", putPCBEvent)
	reg.Dispatch(gameCode, "package.list", packageList)
}

// localServiceURLs mirrors the itemUrls table in plugin.py: every backend
// module this cabinet talks to, all pointed at the same local port.
var localServiceURLs = []string{
	"cardmng", "facility", "message", "numbering", "package", "pcbevent",
	"pcbtracker", "pkglist", "posevent", "userdata", "userid", "eacoin",
	"local", "local2", "lobby", "lobby2", "dlstatus", "netlog", "sidmgr",
	"globby",
}

func serviceItem(name, url string) *node.Node {
	item := node.Void("item")
	item.SetAttribute("name", name)
	item.SetAttribute("url", url)
	return item
}

func getServices(ctx context.Context, req *node.Node) (*node.Node, error) {
	response := node.Void("response")

	services := node.Void("services")
	services.SetAttribute("method", "get")
	services.SetAttribute("expire", "10800")
	services.SetAttribute("mode", "operation")
	services.SetAttribute("status", "0")

	services.AddChild(serviceItem("ntp", "ntp://pool.ntp.org/"))
	services.AddChild(serviceItem("keepalive",
		"http://127.0.0.1/core/keepalive?pa=127.0.0.1&ia=127.0.0.1&ga=127.0.0.1&ma=127.0.0.1&t1=2&t2=10"))
	for _, name := range localServiceURLs {
		services.AddChild(serviceItem(name, "http://localhost:8083"))
	}

	response.AddChild(services)
	return response, nil
}

func aliveTracker(ctx context.Context, req *node.Node) (*node.Node, error) {
	response := node.Void("response")
	tracker := node.Void("pcbtracker")
	tracker.SetAttribute("status", "0")
	tracker.SetAttribute("expire", "1200")
	tracker.SetAttribute("ecenable", req.Attribute("ecflag", "1"))
	tracker.SetAttribute("eclimit", "0")
	tracker.SetAttribute("limit", "0")
	tracker.SetAttribute("time", strconv.FormatInt(time.Now().Unix(), 10))
	response.AddChild(tracker)
	return response, nil
}

func getMessage(ctx context.Context, req *node.Node) (*node.Node, error) {
	response := node.Void("response")
	message := node.Void("message")
	message.SetAttribute("expire", "300")
	message.SetAttribute("status", "0")
	response.AddChild(message)
	return response, nil
}

func getFacility(ctx context.Context, req *node.Node) (*node.Node, error) {
	response := node.Void("response")
	facility := node.Void("facility")
	facility.SetAttribute("status", "0")

	location := node.Void("location")
	location.AddChild(node.StrNode("id", "ea"))
	location.AddChild(node.StrNode("country", "AX"))
	location.AddChild(node.StrNode("region", "1"))
	location.AddChild(node.StrNode("name", "CORE"))
	location.AddChild(node.U8Node("type", 0))
	location.AddChild(node.StrNode("countryname", "UNKNOWN"))
	location.AddChild(node.StrNode("countryjname", "不明"))
	location.AddChild(node.StrNode("regionname", "CORE"))
	location.AddChild(node.StrNode("regionjname", "CORE"))
	location.AddChild(node.StrNode("customercode", "AXUSR"))
	location.AddChild(node.StrNode("companycode", "AXCPY"))
	location.AddChild(node.S32Node("latitude", 6666))
	location.AddChild(node.S32Node("longitude", 6666))
	location.AddChild(node.U8Node("accuracy", 0))
	facility.AddChild(location)

	line := node.Void("line")
	line.AddChild(node.StrNode("id", "."))
	line.AddChild(node.U8Node("class", 0))
	facility.AddChild(line)

	portfw := node.Void("portfw")
	portfw.AddChild(node.IP4Node("globalip", netip.MustParseAddr("127.0.0.1")))
	portfw.AddChild(node.S16Node("globalport", 5700))
	portfw.AddChild(node.S16Node("privateport", 5700))
	facility.AddChild(portfw)

	public := node.Void("public")
	public.AddChild(node.U8Node("flag", 1))
	public.AddChild(node.StrNode("name", "UNKNOWN"))
	public.AddChild(node.S32Node("latitude", 0))
	public.AddChild(node.S32Node("longitude", 0))
	facility.AddChild(public)

	share := node.Void("share")
	eacoin := node.Void("eacoin")
	eacoin.AddChild(node.S32Node("notchamount", 0))
	eacoin.AddChild(node.S32Node("notchcount", 0))
	eacoin.AddChild(node.S32Node("supplylimit", 100000))
	share.AddChild(eacoin)

	urlNode := node.Void("url")
	urlNode.AddChild(node.StrNode("eapass", "CORE v1.50c"))
	urlNode.AddChild(node.StrNode("arcadefan", "CORE v1.50c"))
	urlNode.AddChild(node.StrNode("konaminetdx", "CORE v1.50c"))
	urlNode.AddChild(node.StrNode("konamiid", "CORE v1.50c"))
	urlNode.AddChild(node.StrNode("eagate", "CORE v1.50c"))
	share.AddChild(urlNode)

	facility.AddChild(share)
	response.AddChild(facility)
	return response, nil
}

func putPCBEvent(ctx context.Context, req *node.Node) (*node.Node, error) {
	response := node.Void("response")
	event := node.Void("pcbevent")
	event.SetAttribute("status", "0")
	response.AddChild(event)
	return response, nil
}

func packageList(ctx context.Context, req *node.Node) (*node.Node, error) {
	response := node.Void("response")
	pkg := node.Void("package")
	pkg.SetAttribute("expire", "1200")
	pkg.SetAttribute("status", "0")
	response.AddChild(pkg)
	return response, nil
}
