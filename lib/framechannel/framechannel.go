package framechannel

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/MarcGrol/expresscheckout/lib/myuuid"
)

// Method identifies a message on the hosted payment frame protocol.
type Method string

const (
	MethodInit                                 Method = "init"
	MethodDisplayLoader                        Method = "displayLoader"
	MethodGetGoogleShippingAddressParameters   Method = "getGoogleShippingAddressParameters"
	MethodOnPaymentDataChanged                 Method = "onPaymentDataChanged"
	MethodProceedPayment                       Method = "proceedPayment"
	MethodAcceptPayment                        Method = "acceptPayment"
	MethodCancelPayment                        Method = "cancelPayment"
	MethodDisplayError                         Method = "displayError"
	MethodRedirect                             Method = "redirect"
)

func ParseMethod(name string) (Method, error) {
	m := Method(name)
	switch m {
	case MethodInit, MethodDisplayLoader, MethodGetGoogleShippingAddressParameters,
		MethodOnPaymentDataChanged, MethodProceedPayment, MethodAcceptPayment,
		MethodCancelPayment, MethodDisplayError, MethodRedirect:
		return m, nil
	}
	return "", fmt.Errorf("unknown frame method %q", name)
}

type Request struct {
	UID       string          `json:"uid"`
	Method    Method          `json:"method"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

type Reply struct {
	UID    string          `json:"uid"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// Conn delivers a request towards the hosted frame. The matching reply comes
// back asynchronously via Channel.HandleReply.
//
//go:generate mockgen -source=framechannel.go -package framechannel -destination framechannel_mock.go Conn
type Conn interface {
	Send(c context.Context, req Request) error
}

var (
	ErrRequestPending = fmt.Errorf("a frame request is already awaiting its reply")
	ErrNoPendingCall  = fmt.Errorf("no frame request awaiting a reply")
)

// Channel is a request/reply port onto a hosted frame. At most one request is
// outstanding at any time; each request gets exactly one reply.
type Channel struct {
	mutex   sync.Mutex
	conn    Conn
	uuider  myuuid.UUIDer
	pending *pendingCall
}

type pendingCall struct {
	uid     string
	replies chan Reply
}

func New(conn Conn, uuider myuuid.UUIDer) *Channel {
	return &Channel{
		conn:   conn,
		uuider: uuider,
	}
}

// Call sends a request and blocks until its reply arrives or the context ends.
// A second Call while the first awaits its reply fails with ErrRequestPending.
func (ch *Channel) Call(c context.Context, method Method, args interface{}) (json.RawMessage, error) {
	var rawArgs json.RawMessage
	if args != nil {
		marshalled, err := json.Marshal(args)
		if err != nil {
			return nil, fmt.Errorf("error marshalling arguments of %s: %s", method, err)
		}
		rawArgs = marshalled
	}

	ch.mutex.Lock()
	if ch.pending != nil {
		ch.mutex.Unlock()
		return nil, ErrRequestPending
	}
	call := &pendingCall{
		uid:     ch.uuider.Create(),
		replies: make(chan Reply, 1),
	}
	ch.pending = call
	ch.mutex.Unlock()

	err := ch.conn.Send(c, Request{
		UID:       call.uid,
		Method:    method,
		Arguments: rawArgs,
	})
	if err != nil {
		ch.clear(call)
		return nil, fmt.Errorf("error sending %s to frame: %s", method, err)
	}

	select {
	case reply := <-call.replies:
		if reply.Error != "" {
			return nil, fmt.Errorf("frame rejected %s: %s", method, reply.Error)
		}
		return reply.Result, nil
	case <-c.Done():
		ch.clear(call)
		return nil, c.Err()
	}
}

// Notify sends a request that expects no reply (loader, errors, redirects).
func (ch *Channel) Notify(c context.Context, method Method, args interface{}) error {
	var rawArgs json.RawMessage
	if args != nil {
		marshalled, err := json.Marshal(args)
		if err != nil {
			return fmt.Errorf("error marshalling arguments of %s: %s", method, err)
		}
		rawArgs = marshalled
	}

	return ch.conn.Send(c, Request{
		UID:       ch.uuider.Create(),
		Method:    method,
		Arguments: rawArgs,
	})
}

// HandleReply routes an inbound reply to the awaiting Call and closes the
// reply port. Replies for unknown or already answered requests are rejected.
func (ch *Channel) HandleReply(reply Reply) error {
	ch.mutex.Lock()
	call := ch.pending
	if call == nil || call.uid != reply.UID {
		ch.mutex.Unlock()
		return ErrNoPendingCall
	}
	ch.pending = nil
	ch.mutex.Unlock()

	call.replies <- reply
	close(call.replies)

	return nil
}

func (ch *Channel) clear(call *pendingCall) {
	ch.mutex.Lock()
	if ch.pending == call {
		ch.pending = nil
	}
	ch.mutex.Unlock()
}
