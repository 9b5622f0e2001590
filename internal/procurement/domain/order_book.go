package domain

// safetyFactor 裁剪订单簿时在需求总量上预留的余量系数。
const safetyFactor = 1.05

// ReduceOrderBook 独立裁剪每个矿石的订单簿，控制进入 MILP 的档位数量。
// 两步处理：
//  1. 合并严格相邻且价格相同的档位（剩余量求和）。相同价格被不同价格隔开时
//     保持独立，不做全局去重。
//  2. 按序累计剩余量，累计达到 需求总量 × safetyFactor 时截断，越过阈值的
//     那个档位保留。
// 纯函数：不修改输入，价格顺序保持不变；阈值始终未达到时原样全保留。
func ReduceOrderBook(book OrderBook, totalDemandUnits float64) OrderBook {
	reduced := make(OrderBook, len(book))
	threshold := totalDemandUnits * safetyFactor

	for oreID, tiers := range book {
		if len(tiers) == 0 {
			continue
		}

		merged := make([]OrderTier, 0, len(tiers))
		for _, t := range tiers {
			if n := len(merged); n > 0 && merged[n-1].Price == t.Price {
				merged[n-1].VolumeRemain += t.VolumeRemain
				continue
			}
			merged = append(merged, t)
		}

		cumulative := int64(0)
		kept := make([]OrderTier, 0, len(merged))
		for _, t := range merged {
			kept = append(kept, t)
			cumulative += t.VolumeRemain
			if float64(cumulative) >= threshold {
				break
			}
		}
		reduced[oreID] = kept
	}
	return reduced
}
