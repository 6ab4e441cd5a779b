//go:build js && wasm

// GoCaption WASM — Client-side captioning.
// Compiled with: GOOS=js GOARCH=wasm go build -o gocaption.wasm ./clients/wasm/
package main

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"syscall/js"

	"github.com/xob0t/GoCaption/pkg/caption"
	"github.com/xob0t/GoCaption/pkg/imageio"
)

// Fonts live in memory; there is no file system to search.
var captioner = caption.NewCaptioner(caption.NewFontProvider(caption.FontConfig{}))

func main() {
	fmt.Println("GoCaption WASM loaded")

	js.Global().Set("goCaptionImage", js.FuncOf(captionImage))
	js.Global().Set("goRegisterFont", js.FuncOf(registerFont))
	js.Global().Set("goReady", js.ValueOf(true))

	// Block forever (WASM must not exit).
	select {}
}

// goRegisterFont(name, base64TTF) — make a font loadable by name.
func registerFont(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("error: need name, base64Data")
	}
	data, err := base64.StdEncoding.DecodeString(args[1].String())
	if err != nil {
		return js.ValueOf("error: invalid base64: " + err.Error())
	}
	if err := captioner.Fonts().Register(args[0].String(), data); err != nil {
		return js.ValueOf("error: " + err.Error())
	}
	return js.ValueOf("ok")
}

// goCaptionImage(base64Image, fileName, text, styleJSON) — returns base64 PNG.
func captionImage(this js.Value, args []js.Value) interface{} {
	if len(args) < 4 {
		return js.ValueOf("error: need base64Image, fileName, text, styleJSON")
	}

	raw, err := base64.StdEncoding.DecodeString(args[0].String())
	if err != nil {
		return js.ValueOf("error: invalid base64: " + err.Error())
	}
	src, err := imageio.Decode(bytes.NewReader(raw))
	if err != nil {
		return js.ValueOf("error: " + err.Error())
	}

	var st caption.StyleFile
	if s := args[3].String(); s != "" && s != "null" && s != "{}" {
		st, err = caption.ParseStyle([]byte(s))
		if err != nil {
			return js.ValueOf("error: " + err.Error())
		}
	}
	st = caption.MergeStyles(caption.DefaultStyle(), st)

	res, err := captioner.Render(src, args[1].String(), args[2].String(), st.Params())
	if err != nil {
		return js.ValueOf("error: render: " + err.Error())
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, res.Image); err != nil {
		return js.ValueOf("error: encode: " + err.Error())
	}
	return js.ValueOf(base64.StdEncoding.EncodeToString(buf.Bytes()))
}
