package domain

import "fmt"

const (
	// IndexScenario triggers the scenario engine on the client.
	IndexScenario Index = 590
	// IndexLightStart and IndexLightEnd bound the light/shutter block. The legacy
	// client ignores an action unless every index of the block is present.
	IndexLightStart Index = 605
	IndexLightEnd   Index = 622

	MaxExchangeIndex Index = 999
)

type Index int

func (i Index) InLightBlock() bool {
	return i >= IndexLightStart && i <= IndexLightEnd
}

func (i Index) Validate() error {
	if i < 0 || i > MaxExchangeIndex {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	return nil
}

// ExchangeKV is one entry of the exchange table. Values are always strings on the wire.
type ExchangeKV struct {
	K Index
	V string
}

type StatusReport struct {
	Version string
	EK      []ExchangeKV
}

type ServerInfo struct {
	IsConnected bool
	Infos       []Index
	NewVersion  string
}

// ClientSnapshot is what the server currently knows about one client.
type ClientSnapshot struct {
	ClientID  string
	Connected bool
	Values    []ExchangeKV
}
