package service

// milestoneThresholds 固定里程碑档位，超过一万后按整万触发
var milestoneThresholds = [...]int64{5, 10, 50, 100, 500, 1000, 5000, 10000}

// IsMilestone 判断计数是否恰好命中里程碑
func IsMilestone(count int64) bool {
	for _, threshold := range milestoneThresholds {
		if count == threshold {
			return true
		}
	}
	return count > 10000 && count%10000 == 0
}
