// Package style provides the pluggable entry body codecs and their registry.
//
// Every stored entry carries a style tag naming the codec that serialized
// its body. Resolution goes through a static Registry built at startup;
// an empty tag maps to the default "wiki" style, and an unregistered tag
// fails with ErrUnknownStyle. The registry is safe for concurrent Resolve.
//
// Third-party styles implement Codec and call Registry.Register before the
// engine is constructed.
package style
