package calendar

// Reward is one calendar payout: a fly amount, an item grant, or both.
type Reward struct {
	Flies    int    `json:"flies,omitempty"`
	ItemID   string `json:"item_id,omitempty"`
	Quantity int    `json:"quantity,omitempty"`
}

// DayReward pairs the free-tier and premium-tier payouts for one day of the
// month. The premium payout is granted in addition to the free one.
type DayReward struct {
	Free    Reward `json:"free"`
	Premium Reward `json:"premium"`
}

// GiftContainerItemID is the catalog item handed out on gift days.
const GiftContainerItemID = "gift_box"

// rewardTable is the fixed day-of-month reward schedule. Every 7th day pays a
// gift container; fly amounts ramp through the month.
var rewardTable = map[int]DayReward{
	1:  {Free: Reward{Flies: 2}, Premium: Reward{Flies: 4}},
	2:  {Free: Reward{Flies: 2}, Premium: Reward{Flies: 4}},
	3:  {Free: Reward{Flies: 2}, Premium: Reward{Flies: 5}},
	4:  {Free: Reward{Flies: 3}, Premium: Reward{Flies: 5}},
	5:  {Free: Reward{Flies: 3}, Premium: Reward{Flies: 6}},
	6:  {Free: Reward{Flies: 3}, Premium: Reward{Flies: 6}},
	7:  {Free: Reward{ItemID: GiftContainerItemID, Quantity: 1}, Premium: Reward{Flies: 5}},
	8:  {Free: Reward{Flies: 3}, Premium: Reward{Flies: 6}},
	9:  {Free: Reward{Flies: 3}, Premium: Reward{Flies: 6}},
	10: {Free: Reward{Flies: 4}, Premium: Reward{Flies: 7}},
	11: {Free: Reward{Flies: 4}, Premium: Reward{Flies: 7}},
	12: {Free: Reward{Flies: 4}, Premium: Reward{Flies: 8}},
	13: {Free: Reward{Flies: 4}, Premium: Reward{Flies: 8}},
	14: {Free: Reward{ItemID: GiftContainerItemID, Quantity: 1}, Premium: Reward{ItemID: GiftContainerItemID, Quantity: 1}},
	15: {Free: Reward{Flies: 4}, Premium: Reward{Flies: 8}},
	16: {Free: Reward{Flies: 5}, Premium: Reward{Flies: 9}},
	17: {Free: Reward{Flies: 5}, Premium: Reward{Flies: 9}},
	18: {Free: Reward{Flies: 5}, Premium: Reward{Flies: 9}},
	19: {Free: Reward{Flies: 5}, Premium: Reward{Flies: 10}},
	20: {Free: Reward{Flies: 5}, Premium: Reward{Flies: 10}},
	21: {Free: Reward{ItemID: GiftContainerItemID, Quantity: 1}, Premium: Reward{Flies: 8}},
	22: {Free: Reward{Flies: 6}, Premium: Reward{Flies: 10}},
	23: {Free: Reward{Flies: 6}, Premium: Reward{Flies: 11}},
	24: {Free: Reward{Flies: 6}, Premium: Reward{Flies: 11}},
	25: {Free: Reward{Flies: 6}, Premium: Reward{Flies: 12}},
	26: {Free: Reward{Flies: 7}, Premium: Reward{Flies: 12}},
	27: {Free: Reward{Flies: 7}, Premium: Reward{Flies: 12}},
	28: {Free: Reward{ItemID: GiftContainerItemID, Quantity: 1}, Premium: Reward{ItemID: GiftContainerItemID, Quantity: 2}},
	29: {Free: Reward{Flies: 8}, Premium: Reward{Flies: 14}},
	30: {Free: Reward{Flies: 8}, Premium: Reward{Flies: 15}},
	31: {Free: Reward{Flies: 10}, Premium: Reward{ItemID: GiftContainerItemID, Quantity: 1}},
}

// RewardFor returns the payout pair for a day of the month.
func RewardFor(day int) (DayReward, bool) {
	r, ok := rewardTable[day]
	return r, ok
}
