package consts

const (
	MilestoneTypeLikes    = "LIKES"
	MilestoneTypeViews    = "VIEWS"
	MilestoneTypeComments = "COMMENTS"
)

// IdempotencyKeyHeader 跨服务投递的幂等键请求头
const IdempotencyKeyHeader = "Idempotency-Key"
