package midi

import (
	"errors"
	"sync"

	"gitlab.com/gomidi/midi/v2/drivers"
)

type fakeDriver struct {
	ins    []drivers.In
	outs   []drivers.Out
	insErr error
}

func (d *fakeDriver) Ins() ([]drivers.In, error) {
	if d.insErr != nil {
		return nil, d.insErr
	}
	return d.ins, nil
}

func (d *fakeDriver) Outs() ([]drivers.Out, error) { return d.outs, nil }
func (d *fakeDriver) String() string               { return "fake" }
func (d *fakeDriver) Close() error                 { return nil }

type fakePort struct {
	name   string
	number int
	open   bool
	closes int
}

func (p *fakePort) Open() error {
	p.open = true
	return nil
}

func (p *fakePort) Close() error {
	p.open = false
	p.closes++
	return nil
}

func (p *fakePort) IsOpen() bool            { return p.open }
func (p *fakePort) Number() int             { return p.number }
func (p *fakePort) String() string          { return p.name }
func (p *fakePort) Underlying() interface{} { return nil }

type fakeIn struct {
	fakePort
	mu      sync.Mutex
	onMsg   func([]byte, int32)
	stopped bool
	// listenErr makes Listen fail after the port was opened
	listenErr error
}

func (in *fakeIn) Listen(onMsg func(msg []byte, milliseconds int32), _ drivers.ListenConfig) (func(), error) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.listenErr != nil {
		return nil, in.listenErr
	}
	in.onMsg = onMsg
	return func() {
		in.mu.Lock()
		in.stopped = true
		in.mu.Unlock()
	}, nil
}

// emit delivers data as if the device had sent it
func (in *fakeIn) emit(data []byte, ms int32) {
	in.mu.Lock()
	fn := in.onMsg
	in.mu.Unlock()
	if fn != nil {
		fn(data, ms)
	}
}

type fakeOut struct {
	fakePort
	sent [][]byte
	err  error
}

func (out *fakeOut) Send(data []byte) error {
	if out.err != nil {
		return out.err
	}
	out.sent = append(out.sent, append([]byte(nil), data...))
	return nil
}

var errBroken = errors.New("broken pipe")

func newFakePad(name string) (*fakeDriver, *fakeIn, *fakeOut) {
	in := &fakeIn{fakePort: fakePort{name: name}}
	out := &fakeOut{fakePort: fakePort{name: name}}
	drv := &fakeDriver{
		ins:  []drivers.In{&fakeIn{fakePort: fakePort{name: "Midi Through Port-0"}}, in},
		outs: []drivers.Out{&fakeOut{fakePort: fakePort{name: "Midi Through Port-0"}}, out},
	}
	return drv, in, out
}
