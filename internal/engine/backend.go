package engine

import (
	"fmt"
	"sort"
)

// Mode selects how a Backend executes jobs.
type Mode string

const (
	// ModeEmbedded runs every phase in the calling goroutine.
	ModeEmbedded Mode = "embedded"

	// ModeLocalCluster runs the map+combine phases across a pool of
	// worker goroutines in this process.
	ModeLocalCluster Mode = "local-cluster"

	// ModeRemoteCluster would delegate to an external cluster. It is
	// recognized so configuration can name it, but this build has no
	// cluster transport.
	ModeRemoteCluster Mode = "remote-cluster"
)

// ParseMode validates a mode string.
func ParseMode(raw string) (Mode, error) {
	switch Mode(raw) {
	case ModeEmbedded, ModeLocalCluster, ModeRemoteCluster:
		return Mode(raw), nil
	case "":
		return ModeEmbedded, nil
	default:
		return "", fmt.Errorf("invalid execution mode %q (expected embedded|local-cluster|remote-cluster)", raw)
	}
}

// New constructs the Backend for a mode. workers bounds the local-cluster
// pool; values < 1 fall back to a single worker.
func New(mode Mode, workers int) (Backend, error) {
	switch mode {
	case ModeEmbedded:
		return &Embedded{}, nil
	case ModeLocalCluster:
		if workers < 1 {
			workers = 1
		}
		return &Local{Workers: workers}, nil
	case ModeRemoteCluster:
		return nil, fmt.Errorf("execution mode %q requires an external cluster endpoint, which is not configured in this build", mode)
	default:
		return nil, fmt.Errorf("unknown execution mode %q", mode)
	}
}

func validateJob(job Job) error {
	if job.Mapper == nil {
		return fmt.Errorf("job %q: nil mapper", job.Name)
	}
	if job.Reducer == nil {
		return fmt.Errorf("job %q: nil reducer", job.Name)
	}
	return nil
}

// groupByKey shuffles emitted records into per-key value lists. Values keep
// their emission order within a key.
func groupByKey(kvs []KeyValue) map[string][]string {
	groups := make(map[string][]string)
	for _, kv := range kvs {
		groups[kv.Key] = append(groups[kv.Key], kv.Value)
	}
	return groups
}

// reduceGroups applies the reducer to every key in sorted order.
func reduceGroups(reducer Reducer, groups map[string][]string) ([]KeyValue, error) {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []KeyValue
	emit := func(kv KeyValue) { out = append(out, kv) }
	for _, k := range keys {
		if err := reducer.Reduce(k, groups[k], emit); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// sortResults fixes the deterministic result order: key asc, then value asc.
func sortResults(kvs []KeyValue) {
	sort.Slice(kvs, func(i, j int) bool {
		if kvs[i].Key != kvs[j].Key {
			return kvs[i].Key < kvs[j].Key
		}
		return kvs[i].Value < kvs[j].Value
	})
}
