// Package config defines the format-agnostic configuration model for the
// application, and the Loader that builds it from sweep files.
//
// The Loader only knows about files and extensions. Turning bytes into
// sweeps is the job of a Decoder; concrete decoders for HCL and YAML live in
// their own packages and are wired together by the app package.
package config
