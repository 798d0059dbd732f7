package internal

import (
	"database/sql/driver"
	"encoding/json"
	"essensys-server/internal/exchange/domain"
	"essensys-server/internal/infra/utils"
	"fmt"
	"time"
)

type ActionSet []Action

func (s ActionSet) ToDomain() []domain.Action {
	result := make([]domain.Action, len(s))
	for i, v := range s {
		result[i] = v.ToDomain()
	}

	return result
}

type Action struct {
	Sequence  uint64    `gorm:"primaryKey;autoIncrement"`
	GUID      string    `gorm:"uniqueIndex;size:64"`
	Params    Params    `gorm:"type:text"`
	CreatedAt time.Time
}

func (Action) TableName() string {
	return "exchange_actions"
}

type Params []Param

type Param struct {
	K int    `json:"k"`
	V string `json:"v"`
}

func (p Params) Value() (driver.Value, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (p *Params) Scan(value any) error {
	switch data := value.(type) {
	case string:
		return json.Unmarshal([]byte(data), p)
	case []byte:
		return json.Unmarshal(data, p)
	default:
		return fmt.Errorf("unsupported params column type %T", value)
	}
}

func FromDomainAction(action domain.Action) Action {
	params := make(Params, len(action.Params))
	for i, kv := range action.Params {
		params[i] = Param{K: int(kv.K), V: kv.V}
	}

	return Action{
		GUID:      action.GUID,
		Params:    params,
		CreatedAt: action.CreatedAt.Time,
	}
}

func (a Action) ToDomain() domain.Action {
	params := make([]domain.ExchangeKV, len(a.Params))
	for i, p := range a.Params {
		params[i] = domain.ExchangeKV{K: domain.Index(p.K), V: p.V}
	}

	return domain.Action{
		GUID:      a.GUID,
		Params:    params,
		CreatedAt: utils.Time{Time: a.CreatedAt},
	}
}
