package memory

import "github.com/riskibarqy/fantasy-badminton/internal/domain/player"

// SeedPlayers is the starter registry used for local runs and tests.
func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "ms-01", Name: "Viktor Axelsen", Price: 12, Category: player.CategoryMensSingles},
		{ID: "ms-02", Name: "Kunlavut Vitidsarn", Price: 10, Category: player.CategoryMensSingles},
		{ID: "ms-03", Name: "Lee Zii Jia", Price: 9, Category: player.CategoryMensSingles},
		{ID: "ms-04", Name: "Lakshya Sen", Price: 7, Category: player.CategoryMensSingles},
		{ID: "ms-05", Name: "Anders Antonsen", Price: 8, Category: player.CategoryMensSingles},
		{ID: "ms-06", Name: "Srikanth K.", Price: 15, Category: player.CategoryMensSingles},
		{ID: "ms-07", Name: "Prannoy H. S.", Price: 14, Category: player.CategoryMensSingles},
		{ID: "ms-08", Name: "Gunawan J.", Price: 10, Category: player.CategoryMensSingles},
		{ID: "ws-01", Name: "An Se-young", Price: 11, Category: player.CategoryWomensSingles},
		{ID: "ws-02", Name: "Chen Yufei", Price: 10, Category: player.CategoryWomensSingles},
		{ID: "ws-03", Name: "Akane Yamaguchi", Price: 9, Category: player.CategoryWomensSingles},
		{ID: "ws-04", Name: "P.V. Sindhu", Price: 8, Category: player.CategoryWomensSingles},
		{ID: "ws-05", Name: "Tai Tzu-ying", Price: 11, Category: player.CategoryWomensSingles},
		{ID: "ws-06", Name: "Okuhara N.", Price: 14, Category: player.CategoryWomensSingles},
		{ID: "ws-07", Name: "Ong X. Y.", Price: 12, Category: player.CategoryWomensSingles},
		{ID: "md-01", Name: "Fajar Alfian / Muhammad Rian", Price: 9, Category: player.CategoryMensDoubles},
		{ID: "md-02", Name: "Aaron Chia / Soh Wooi Yik", Price: 8, Category: player.CategoryMensDoubles},
		{ID: "md-03", Name: "Satwiksairaj Rankireddy / Chirag Shetty", Price: 9, Category: player.CategoryMensDoubles},
		{ID: "wd-01", Name: "Chen Qingchen / Jia Yifan", Price: 10, Category: player.CategoryWomensDoubles},
		{ID: "wd-02", Name: "Nami Matsuyama / Chiharu Shida", Price: 8, Category: player.CategoryWomensDoubles},
		{ID: "wd-03", Name: "Pearly Tan / Thinaah Muralitharan", Price: 7, Category: player.CategoryWomensDoubles},
		{ID: "xd-01", Name: "Zheng Siwei / Huang Yaqiong", Price: 11, Category: player.CategoryMixedDoubles},
		{ID: "xd-02", Name: "Dechapol Puavaranukroh / Sapsiree Taerattanachai", Price: 10, Category: player.CategoryMixedDoubles},
		{ID: "xd-03", Name: "Yuta Watanabe / Arisa Higashino", Price: 9, Category: player.CategoryMixedDoubles},
	}
}
