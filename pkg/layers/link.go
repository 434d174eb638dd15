package layers

import "Linksim/pkg/channel"

// Link connects a Transmitter to a Receiver through a Channel. A nil
// Channel behaves as a loopback.
type Link struct {
	Transmitter *Transmitter
	Channel     channel.Channel
	Receiver    *Receiver
}

// Result of one message sent over a Link.
type Result struct {
	Text    string
	Samples int
	Status  Status
}

func (l *Link) Send(text string) (Result, error) {
	samples, err := l.Transmitter.Transmit(text)
	if err != nil {
		return Result{}, err
	}

	var ch channel.Channel = channel.Loopback{}
	if l.Channel != nil {
		ch = l.Channel
	}
	received := l.Receiver.Receive(ch.Transmit(samples))

	return Result{
		Text:    received,
		Samples: len(samples),
		Status:  l.Receiver.Status(),
	}, nil
}
