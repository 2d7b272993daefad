package shared

// Asynq task types
const (
	TypeIngestTrending  = "movie:ingest_trending"
	TypeWorkerHeartbeat = "worker:heartbeat"
)

// Asynq queues and their priorities in the worker
const (
	QueueIngest  = "ingest"
	QueueDefault = "default"
)

// QueuePriorities is passed to asynq.Config.Queues
var QueuePriorities = map[string]int{
	QueueIngest:  6,
	QueueDefault: 3,
}

// HeartbeatPayload is the payload of TypeWorkerHeartbeat
type HeartbeatPayload struct {
	Source string `json:"source,omitempty"`
}
