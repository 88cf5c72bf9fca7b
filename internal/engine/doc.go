// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package engine wraps the local inference runtime behind a small
// load/generate/stop contract.
//
// The runtime is treated as a black box: it loads a model and tokenizer from
// opaque file paths, streams generated tokens through a callback, and accepts
// an advisory stop signal. Exactly one engine session exists per process; it
// is created from configuration at startup, injected into the generation
// controller, and loaded lazily on the first request.
//
// The real backend is llama.cpp through github.com/go-skynet/go-llama.cpp and
// is compiled in with the "llama" build tag. Without the tag a stub session
// is used whose Load fails with a dependency-unavailable code, so the rest of
// the application (and its tests) build without the native toolchain.
package engine
