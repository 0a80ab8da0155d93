// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package plugin

import (
	"context"
	"testing"

	"github.com/hiiragi-go/hiiragi/node"
)

func TestInvokeDispatchesRegisteredHandler(t *testing.T) {
	reg := NewRegistry()
	reg.Dispatch("NBT", "services.get", func(ctx context.Context, req *node.Node) (*node.Node, error) {
		return node.Void("response"), nil
	})

	resp, err := reg.Invoke(context.Background(), "NBT", "services.get", node.Void("call"))
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if resp.Name() != "response" {
		t.Fatalf("got %+v", resp)
	}
}

func TestInvokeMissingGameOrAction(t *testing.T) {
	reg := NewRegistry()
	reg.Dispatch("NBT", "services.get", func(ctx context.Context, req *node.Node) (*node.Node, error) {
		return node.Void("response"), nil
	})

	if _, err := reg.Invoke(context.Background(), "XYZ", "services.get", nil); err != ErrHandlerAbsent {
		t.Fatalf("unknown game: err = %v, want ErrHandlerAbsent", err)
	}
	if _, err := reg.Invoke(context.Background(), "NBT", "bogus.action", nil); err != ErrHandlerAbsent {
		t.Fatalf("unknown action: err = %v, want ErrHandlerAbsent", err)
	}
}

func TestInvokeRejectsNilResponse(t *testing.T) {
	reg := NewRegistry()
	reg.Dispatch("NBT", "broken", func(ctx context.Context, req *node.Node) (*node.Node, error) {
		return nil, nil
	})

	if _, err := reg.Invoke(context.Background(), "NBT", "broken", nil); err != ErrHandlerReturnedWrong {
		t.Fatalf("err = %v, want ErrHandlerReturnedWrong", err)
	}
}

func TestRegisterPopulatesDefault(t *testing.T) {
	const game = "TEST"
	r := registrarFunc(func(reg *Registry) {
		reg.Dispatch(game, "ping", func(ctx context.Context, req *node.Node) (*node.Node, error) {
			return node.Void("pong"), nil
		})
	})
	Register("test plugin", r)

	resp, err := Default.Invoke(context.Background(), game, "ping", nil)
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if resp.Name() != "pong" {
		t.Fatalf("got %+v", resp)
	}
}

type registrarFunc func(reg *Registry)

func (f registrarFunc) Load(reg *Registry) { f(reg) }
