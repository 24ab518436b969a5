package redis

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"
	"testing"

	"github.com/redis/go-redis/v9"
)

// memoryHook serves the handful of commands the adapters use from a map.
type memoryHook struct {
	mu      sync.Mutex
	values  map[string]string
	expires map[string]bool
	err     error
}

func newMemoryClient(t *testing.T) (*redis.Client, *memoryHook) {
	t.Helper()
	hook := &memoryHook{values: map[string]string{}, expires: map[string]bool{}}
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	client.AddHook(hook)
	t.Cleanup(func() { _ = client.Close() })
	return client, hook
}

func (h *memoryHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return nil, errors.New("dial not expected")
	}
}

func (h *memoryHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func (h *memoryHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		h.mu.Lock()
		defer h.mu.Unlock()

		if h.err != nil {
			cmd.SetErr(h.err)
			return h.err
		}

		args := cmd.Args()
		key := fmt.Sprint(args[1])

		switch cmd.Name() {
		case "incr":
			n, _ := strconv.ParseInt(h.values[key], 10, 64)
			n++
			h.values[key] = fmt.Sprint(n)
			cmd.(*redis.IntCmd).SetVal(n)
		case "expire", "pexpire":
			h.expires[key] = true
			cmd.(*redis.BoolCmd).SetVal(true)
		case "setnx":
			_, exists := h.values[key]
			if !exists {
				h.values[key] = stringValue(args[2])
			}
			cmd.(*redis.BoolCmd).SetVal(!exists)
		case "set":
			if hasArg(args, "nx") {
				_, exists := h.values[key]
				if !exists {
					h.values[key] = stringValue(args[2])
					h.expires[key] = true
				}
				cmd.(*redis.BoolCmd).SetVal(!exists)
				return nil
			}
			h.values[key] = stringValue(args[2])
			if len(args) > 3 {
				h.expires[key] = true
			}
			cmd.(*redis.StatusCmd).SetVal("OK")
		case "get":
			v, ok := h.values[key]
			if !ok {
				cmd.SetErr(redis.Nil)
				return redis.Nil
			}
			cmd.(*redis.StringCmd).SetVal(v)
		case "del":
			var n int64
			for _, a := range args[1:] {
				k := fmt.Sprint(a)
				if _, ok := h.values[k]; ok {
					delete(h.values, k)
					n++
				}
			}
			cmd.(*redis.IntCmd).SetVal(n)
		default:
			err := fmt.Errorf("unsupported command %q", cmd.Name())
			cmd.SetErr(err)
			return err
		}
		return nil
	}
}

func (h *memoryHook) has(key string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.values[key]
	return ok
}

func stringValue(v any) string {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return fmt.Sprint(v)
}

func hasArg(args []any, want string) bool {
	for _, a := range args {
		if s, ok := a.(string); ok && s == want {
			return true
		}
	}
	return false
}
