/*
Package media describes external media files to the rest of the system and
owns the decoder-probing orchestration.

A Footage record stores metadata about one media file: its streams, its
probe status, and the identifier of the decoder that accepted it. Probing
passes a footage record through an ordered, fixed-priority list of decoder
candidates, specialized decoders before generic ones, stopping at the first
that accepts the file. The graph core consumes footage records only as
opaque references; decoding frames is the decoders' business.
*/
package media
