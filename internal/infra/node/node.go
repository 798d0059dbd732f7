package node

import (
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Node describes the running server process. /healthz and the log handler
// report it.
type Node struct {
	ID         string
	Hostname   string
	Version    string
	CommitHash string
	StartedAt  time.Time
}

// Set at build time with -ldflags "-X essensys-server/internal/infra/node.Version=...".
var Version = "development"
var CommitHash = "unknown"

var (
	current     Node
	currentOnce sync.Once
)

func GetNodeInfo() *Node {
	currentOnce.Do(func() {
		hostname, err := os.Hostname()
		if err != nil || hostname == "" {
			hostname = "localhost"
		}
		current = Node{
			ID:         uuid.NewString(),
			Hostname:   hostname,
			Version:    Version,
			CommitHash: CommitHash,
			StartedAt:  time.Now(),
		}
	})
	info := current
	return &info
}

func (n *Node) Uptime() time.Duration {
	return time.Since(n.StartedAt)
}
