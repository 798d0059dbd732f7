package domain

import (
	"essensys-server/internal/infra/utils"
	"fmt"
	"sort"
	"strconv"
	"time"
)

const (
	_scenarioTrigger  = "1"
	_blockDefault     = "0"
	_noFirmwareUpdate = "no"
)

// Action is a unit of work queued for the client. It stays queued until the client
// acknowledges its GUID.
type Action struct {
	GUID      string
	Params    []ExchangeKV
	CreatedAt utils.Time
}

func (a Action) Param(index Index) (string, bool) {
	for _, p := range a.Params {
		if p.K == index {
			return p.V, true
		}
	}
	return "", false
}

// GenerateCompleteBlock expands params touching the light/shutter block into the full
// 605..622 block plus the scenario trigger. Explicit values always win over defaults.
// Params outside the block are returned unchanged.
func GenerateCompleteBlock(params []ExchangeKV) []ExchangeKV {
	touchesBlock := false
	for _, p := range params {
		if p.K.InLightBlock() {
			touchesBlock = true
			break
		}
	}
	if !touchesBlock {
		return params
	}

	values := make(map[Index]string, len(params)+int(IndexLightEnd-IndexLightStart)+2)
	for _, p := range params {
		values[p.K] = p.V
	}

	if _, ok := values[IndexScenario]; !ok {
		values[IndexScenario] = _scenarioTrigger
	}
	for i := IndexLightStart; i <= IndexLightEnd; i++ {
		if _, ok := values[i]; !ok {
			values[i] = _blockDefault
		}
	}

	return sortedParams(values)
}

// BitwiseFusion merges two values written to the same index. The scenario index is
// never fused. Non numeric values keep the most recent one.
func BitwiseFusion(index Index, existing, incoming string) string {
	if index == IndexScenario {
		return incoming
	}

	a, errA := strconv.Atoi(existing)
	b, errB := strconv.Atoi(incoming)
	if errA != nil || errB != nil {
		return incoming
	}

	return strconv.Itoa(a | b)
}

// MergeParams fuses incoming params into existing ones index by index. Duplicated
// indices inside incoming are fused as well.
func MergeParams(existing, incoming []ExchangeKV) []ExchangeKV {
	values := make(map[Index]string, len(existing)+len(incoming))
	for _, p := range existing {
		values[p.K] = p.V
	}
	for _, p := range incoming {
		if current, ok := values[p.K]; ok {
			values[p.K] = BitwiseFusion(p.K, current, p.V)
			continue
		}
		values[p.K] = p.V
	}

	return sortedParams(values)
}

func sortedParams(values map[Index]string) []ExchangeKV {
	result := make([]ExchangeKV, 0, len(values))
	for k, v := range values {
		result = append(result, ExchangeKV{K: k, V: v})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].K < result[j].K
	})
	return result
}

func NewActionBuilder() *actionBuilder {
	return &actionBuilder{}
}

type actionBuilder struct {
	actions []actionHandler
}

type actionHandler func(v *Action) error

func (b *actionBuilder) WithGUID(value string) *actionBuilder {
	b.actions = append(b.actions, func(a *Action) error {
		if value == "" {
			return fmt.Errorf("empty guid")
		}
		a.GUID = value
		return nil
	})
	return b
}

func (b *actionBuilder) WithParams(value []ExchangeKV) *actionBuilder {
	b.actions = append(b.actions, func(a *Action) error {
		if len(value) == 0 {
			return ErrEmptyParams
		}
		for _, p := range value {
			if err := p.K.Validate(); err != nil {
				return err
			}
		}
		a.Params = GenerateCompleteBlock(MergeParams(nil, value))
		return nil
	})
	return b
}

func (b *actionBuilder) Build() (Action, error) {
	result := Action{
		GUID:      utils.GenerateUUID(),
		CreatedAt: utils.Time{Time: time.Now()},
	}
	for _, a := range b.actions {
		if err := a(&result); err != nil {
			return Action{}, err
		}
	}
	if len(result.Params) == 0 {
		return Action{}, ErrEmptyParams
	}
	return result, nil
}

func NewServerInfo(requested []Index) ServerInfo {
	return ServerInfo{
		IsConnected: true,
		Infos:       requested,
		NewVersion:  _noFirmwareUpdate,
	}
}
