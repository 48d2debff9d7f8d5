package review

var defaultReviews = []Review{
	{Name: "Marcus Lee", Rating: 4.3, Text: "Swapped 0.05 BTC to Monera. Took 18 minutes total. No issues, clean interface."},
	{Name: "Elena Petrova", Rating: 4.1, Text: "Used ETH to XMR. Rate was fair. Deposit address appeared instantly."},
	{Name: "Jamal Carter", Rating: 4.5, Text: "Best no-KYC swap I’ve used. Support replied in 40 minutes via email."},
	{Name: "Sofia Mendes", Rating: 3.9, Text: "Swapped SOL to USDT. Slight delay (25 mins) but got full amount."},
	{Name: "Raj Patel", Rating: 4.4, Text: "Dark mode works great. Mobile site is smooth."},
	{Name: "Anna Schmidt", Rating: 4.0, Text: "First time using. Instructions were clear. Will use again."},
	{Name: "David Kim", Rating: 4.6, Text: "Swapped $500 USDT to Monera. Fast and private."},
	{Name: "Lina Chen", Rating: 4.2, Text: "Live prices help decide when to swap. Good feature."},
	{Name: "Omar Farooq", Rating: 3.8, Text: "Took 32 minutes for ETH swap. Expected faster."},
	{Name: "Freya Olsen", Rating: 4.3, Text: "No registration needed. Just swap and go."},
	{Name: "Carlos Rivera", Rating: 4.1, Text: "Swapped small amount of SOL. Worked fine."},
	{Name: "Yuki Tanaka", Rating: 4.5, Text: "Privacy-focused. Exactly what I wanted."},
	{Name: "Noah Williams", Rating: 4.0, Text: "Rate slightly below market but acceptable for privacy."},
	{Name: "Aisha Khan", Rating: 4.4, Text: "Support helped with wrong network issue. Resolved in 1 hour."},
	{Name: "Lars Nielsen", Rating: 4.2, Text: "Clean design. Easy to use."},
	{Name: "Mateo Gomez", Rating: 3.9, Text: "Deposit timer is helpful. Wish it was 45 mins."},
	{Name: "Zoe Taylor", Rating: 4.6, Text: "Best for Monera. Will keep using."},
	{Name: "Arjun Singh", Rating: 4.1, Text: "Swapped during high gas. Still completed."},
	{Name: "Clara Müller", Rating: 4.3, Text: "No hidden fees. Everything upfront."},
	{Name: "Nina Andersson", Rating: 4.0, Text: "Works on phone. No app needed."},
	{Name: "Gabriel Costa", Rating: 4.5, Text: "Fast swap from USDT to XMR."},
	{Name: "Leila Hosseini", Rating: 4.2, Text: "Good for beginners."},
	{Name: "Thomas Weber", Rating: 3.8, Text: "Slight UI lag on old Android."},
	{Name: "Hana Suzuki", Rating: 4.4, Text: "Love the any-to-any feature."},
	{Name: "Ryan Thompson", Rating: 4.1, Text: "Reliable so far."},
	{Name: "Valeria Rossi", Rating: 4.3, Text: "Swapped XMR to BTC. Smooth."},
	{Name: "Fatima Al-Sayed", Rating: 4.0, Text: "Fair rates. No complaints."},
	{Name: "Oliver Schmidt", Rating: 4.5, Text: "Best privacy swap site."},
	{Name: "Emma Johnson", Rating: 4.2, Text: "Used twice. Both times good."},
	{Name: "Rahul Patel", Rating: 3.9, Text: "Could be faster but works."},
}
