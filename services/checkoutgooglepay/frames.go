package checkoutgooglepay

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/MarcGrol/expresscheckout/lib/framechannel"
	"github.com/MarcGrol/expresscheckout/lib/myerrors"
	"github.com/MarcGrol/expresscheckout/lib/myuuid"
	"github.com/MarcGrol/expresscheckout/services/finalization"
)

const outboxSize = 16

// FrameGateway keeps one request/reply channel per attempt towards the hosted
// payment frame. The frame drains outbound requests via long poll and posts
// its replies back.
type FrameGateway struct {
	mutex    sync.Mutex
	uuider   myuuid.UUIDer
	channels map[string]*frameChannel
}

type frameChannel struct {
	channel *framechannel.Channel
	outbox  chan framechannel.Request
}

func NewFrameGateway(uuider myuuid.UUIDer) *FrameGateway {
	return &FrameGateway{
		uuider:   uuider,
		channels: map[string]*frameChannel{},
	}
}

func (g *FrameGateway) channelFor(attemptUID string) *frameChannel {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	ch, found := g.channels[attemptUID]
	if !found {
		outbox := make(chan framechannel.Request, outboxSize)
		ch = &frameChannel{
			channel: framechannel.New(outboxConn{outbox: outbox}, g.uuider),
			outbox:  outbox,
		}
		g.channels[attemptUID] = ch
	}

	return ch
}

// AcceptPayment asks the frame to book the payment and waits for the terminal
// status.
func (g *FrameGateway) AcceptPayment(c context.Context, attemptUID string, req finalization.AcceptPaymentRequest) (finalization.AcceptPaymentResult, error) {
	result := finalization.AcceptPaymentResult{}

	raw, err := g.channelFor(attemptUID).channel.Call(c, framechannel.MethodAcceptPayment, req)
	if err != nil {
		return result, myerrors.NewInternalError(fmt.Errorf("error accepting payment of attempt %s: %s", attemptUID, err))
	}

	err = json.Unmarshal(raw, &result)
	if err != nil {
		return result, myerrors.NewInternalError(fmt.Errorf("error parsing accept-payment result of attempt %s: %s", attemptUID, err))
	}

	return result, nil
}

// DisplayError tells the frame to surface a generic payment error.
func (g *FrameGateway) DisplayError(c context.Context, attemptUID string) error {
	return g.channelFor(attemptUID).channel.Notify(c, framechannel.MethodDisplayError, nil)
}

// NextRequest blocks until an outbound request is available or the context
// ends.
func (g *FrameGateway) NextRequest(c context.Context, attemptUID string) (framechannel.Request, bool) {
	select {
	case req := <-g.channelFor(attemptUID).outbox:
		return req, true
	case <-c.Done():
		return framechannel.Request{}, false
	}
}

// HandleReply routes the frame's reply to the awaiting call.
func (g *FrameGateway) HandleReply(attemptUID string, reply framechannel.Reply) error {
	return g.channelFor(attemptUID).channel.HandleReply(reply)
}

// Release drops the channel of a finished attempt.
func (g *FrameGateway) Release(attemptUID string) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	delete(g.channels, attemptUID)
}

type outboxConn struct {
	outbox chan framechannel.Request
}

func (o outboxConn) Send(c context.Context, req framechannel.Request) error {
	select {
	case o.outbox <- req:
		return nil
	default:
		return fmt.Errorf("frame outbox full")
	}
}
