// Package internal holds the SDL plumbing behind the doomdex screens: window
// and renderer setup, input mapping, fonts, theming, icon rasterizing,
// asynchronous image loading, the power button handler and logging.
// Nothing here is part of the public API.
package internal
