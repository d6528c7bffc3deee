package duration

var enhancedEntries = []Entry{
	{"JFK", "LAX", 6.0}, {"JFK", "SFO", 6.5}, {"JFK", "SEA", 6.5},
	{"JFK", "DEN", 4.5}, {"JFK", "ORD", 2.5}, {"JFK", "ATL", 2.5},
	{"LAX", "SFO", 1.5}, {"LAX", "LAS", 1.2}, {"LAX", "PHX", 1.5},
	{"LAX", "DEN", 2.5}, {"LAX", "ORD", 4.0}, {"LAX", "ATL", 4.5},
	{"ORD", "DEN", 2.5}, {"ORD", "ATL", 2.0}, {"ORD", "DFW", 2.5},
	{"ATL", "MIA", 2.0}, {"ATL", "MCO", 1.5}, {"ATL", "BOS", 2.5},
	{"DFW", "LAX", 3.0}, {"DFW", "PHX", 2.0}, {"DFW", "DEN", 1.5},
	{"DEN", "SFO", 2.5}, {"DEN", "SEA", 2.0}, {"DEN", "PHX", 1.5},
	{"SFO", "SEA", 2.0}, {"SFO", "LAS", 1.5}, {"SFO", "PHX", 2.0},
	{"SEA", "LAX", 2.5}, {"SEA", "DEN", 2.0}, {"SEA", "SFO", 2.0},
	{"BOS", "JFK", 1.2}, {"BOS", "ATL", 2.5}, {"BOS", "ORD", 3.0},
	{"MIA", "JFK", 3.0}, {"MIA", "ATL", 2.0}, {"MIA", "MCO", 1.0},
}

var basicEntries = []Entry{
	{"JFK", "LAX", 6}, {"JFK", "SFO", 6}, {"JFK", "SEA", 6},
	{"JFK", "DEN", 4}, {"JFK", "ORD", 2}, {"JFK", "ATL", 2},
	{"LAX", "SFO", 1}, {"LAX", "LAS", 1}, {"LAX", "PHX", 2},
	{"ORD", "DEN", 2}, {"ORD", "ATL", 2}, {"ORD", "DFW", 2},
	{"ATL", "MIA", 2}, {"ATL", "MCO", 1}, {"DFW", "LAX", 3},
	{"DEN", "SFO", 2}, {"DEN", "SEA", 2}, {"SEA", "SFO", 2},
	{"BOS", "JFK", 1}, {"IAD", "ATL", 2}, {"PHL", "ORD", 2},
}

// Enhanced uses fractional block times and a 1.5-5.5h uniform fallback.
func Enhanced() *Estimator {
	return New(enhancedEntries, 1.5, 5.5, false)
}

// Basic uses whole-hour block times and a 1-5h integer fallback.
func Basic() *Estimator {
	return New(basicEntries, 1, 5, true)
}
