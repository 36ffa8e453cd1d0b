package telemetry

// WheelQuad carries one value per wheel in the feed's canonical order:
// rear left, rear right, front left, front right. Decoders and consumers
// must never reorder the elements.
type WheelQuad[T any] struct {
	RearLeft   T `json:"rear_left"`
	RearRight  T `json:"rear_right"`
	FrontLeft  T `json:"front_left"`
	FrontRight T `json:"front_right"`
}

func wheelQuad[T any](read func() T) WheelQuad[T] {
	return WheelQuad[T]{
		RearLeft:   read(),
		RearRight:  read(),
		FrontLeft:  read(),
		FrontRight: read(),
	}
}
