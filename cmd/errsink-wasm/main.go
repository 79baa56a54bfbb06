//go:build js && wasm

// Command errsink-wasm exposes the binding surface to a JavaScript host as a
// global ErrorSink constructor:
//
//	const sink = new ErrorSink("https://errors.example.com", "s3cret");
//	await sink.customError("Error", "disk full", "main.js:12");
package main

import (
	"context"
	"log/slog"
	"syscall/js"

	"github.com/NVIDIA/errorsink/pkg/binding"
	"github.com/NVIDIA/errorsink/pkg/logging"
	"github.com/NVIDIA/errorsink/pkg/version"
)

const name = "errsink-wasm"

func main() {
	logging.SetDefaultStructuredLogger(name, version.Version)

	ctor := js.FuncOf(newErrorSink)
	js.Global().Set("ErrorSink", ctor)
	slog.Debug("ErrorSink registered")

	// keep the Go runtime alive for callbacks
	select {}
}

// newErrorSink is the ErrorSink(baseURL, token) constructor.
func newErrorSink(_ js.Value, args []js.Value) any {
	if len(args) < 2 {
		return jsError("ErrorSink requires baseURL and token")
	}

	h, err := binding.New(args[0].String(), args[1].String())
	if err != nil {
		return jsError(err.Error())
	}

	obj := js.Global().Get("Object").New()
	obj.Set("baseURL", h.BaseURL())
	obj.Set("customError", js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) < 3 {
			return rejected("customError requires level, message and trace")
		}
		return customError(h, args[0].String(), args[1].String(), args[2].String())
	}))
	return obj
}

// customError returns a Promise settled by awaiting the deferred send.
func customError(h *binding.Handle, level, message, trace string) js.Value {
	f := h.CustomError(level, message, trace)

	executor := js.FuncOf(func(_ js.Value, args []js.Value) any {
		resolve, reject := args[0], args[1]
		go func() {
			if err := f.Await(context.Background()); err != nil {
				slog.Debug("custom error not delivered", "error", err)
				reject.Invoke(jsError(err.Error()))
				return
			}
			resolve.Invoke(js.Null())
		}()
		return nil
	})
	defer executor.Release()

	return js.Global().Get("Promise").New(executor)
}

func rejected(msg string) js.Value {
	return js.Global().Get("Promise").Call("reject", jsError(msg))
}

func jsError(msg string) js.Value {
	return js.Global().Get("Error").New(msg)
}
