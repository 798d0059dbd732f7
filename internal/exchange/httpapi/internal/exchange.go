package internal

import (
	"bytes"
	"encoding/json"
	"errors"
	"essensys-server/internal/exchange/domain"
)

var ErrEmptyInjection = errors.New("empty injection")

type ExchangeKV struct {
	K int    `json:"k"`
	V string `json:"v"`
}

type ServerInfoResponse struct {
	IsConnected bool   `json:"isconnected"`
	Infos       []int  `json:"infos"`
	NewVersion  string `json:"newversion"`
}

type StatusRequest struct {
	Version string       `json:"version"`
	EK      []ExchangeKV `json:"ek"`
}

type ActionResponse struct {
	GUID   string       `json:"guid"`
	Params []ExchangeKV `json:"params"`
}

// ActionsResponse keeps _de67f as the first key; the client parser reads keys positionally.
// The server issues no alarm commands, so De67f stays nil and encodes as null.
type ActionsResponse struct {
	De67f   json.RawMessage  `json:"_de67f"`
	Actions []ActionResponse `json:"actions"`
}

type ClientSnapshotResponse struct {
	ClientID  string       `json:"client_id"`
	Connected bool         `json:"connected"`
	Values    []ExchangeKV `json:"values"`
}

type InjectResponse struct {
	Status string `json:"status"`
	GUID   string `json:"guid"`
}

// InjectRequest accepts either a single {k,v} object or an array of them.
type InjectRequest []ExchangeKV

func (r *InjectRequest) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return ErrEmptyInjection
	}
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var params []ExchangeKV
		if err := json.Unmarshal(trimmed, &params); err != nil {
			return err
		}
		if len(params) == 0 {
			return ErrEmptyInjection
		}
		*r = params
		return nil
	}

	var single ExchangeKV
	if err := json.Unmarshal(trimmed, &single); err != nil {
		return err
	}
	*r = InjectRequest{single}
	return nil
}

func FromDomainServerInfo(info domain.ServerInfo) ServerInfoResponse {
	infos := make([]int, len(info.Infos))
	for i, index := range info.Infos {
		infos[i] = int(index)
	}
	return ServerInfoResponse{
		IsConnected: info.IsConnected,
		Infos:       infos,
		NewVersion:  info.NewVersion,
	}
}

func FromDomainActions(actions []domain.Action) ActionsResponse {
	result := ActionsResponse{Actions: make([]ActionResponse, len(actions))}
	for i, action := range actions {
		result.Actions[i] = ActionResponse{
			GUID:   action.GUID,
			Params: FromDomainParams(action.Params),
		}
	}
	return result
}

func FromDomainSnapshot(snapshot domain.ClientSnapshot) ClientSnapshotResponse {
	return ClientSnapshotResponse{
		ClientID:  snapshot.ClientID,
		Connected: snapshot.Connected,
		Values:    FromDomainParams(snapshot.Values),
	}
}

func FromDomainParams(params []domain.ExchangeKV) []ExchangeKV {
	result := make([]ExchangeKV, len(params))
	for i, p := range params {
		result[i] = ExchangeKV{K: int(p.K), V: p.V}
	}
	return result
}

func ToDomainParams(params []ExchangeKV) []domain.ExchangeKV {
	result := make([]domain.ExchangeKV, len(params))
	for i, p := range params {
		result[i] = domain.ExchangeKV{K: domain.Index(p.K), V: p.V}
	}
	return result
}

func (r StatusRequest) ToDomain() domain.StatusReport {
	return domain.StatusReport{
		Version: r.Version,
		EK:      ToDomainParams(r.EK),
	}
}
