package model

// Package model defines domain data structures used across the bot: media
// kinds, probe candidates, download offers, request status enums, and the
// session record kept between "offers shown" and "offer selected". Structures
// are designed for direct rendering in chat messages and explicit state
// transitions.
