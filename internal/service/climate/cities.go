package climate

import (
	"fmt"
	"strings"
)

type latLng struct {
	lat, lng float64
}

// cities geocodes the supported Indian city names.
var cities = map[string]latLng{
	"mumbai":             {19.0760, 72.8777},
	"delhi":              {28.7041, 77.1025},
	"bangalore":          {12.9716, 77.5946},
	"bengaluru":          {12.9716, 77.5946},
	"chennai":            {13.0827, 80.2707},
	"kolkata":            {22.5726, 88.3639},
	"hyderabad":          {17.3850, 78.4867},
	"pune":               {18.5204, 73.8567},
	"ahmedabad":          {23.0225, 72.5714},
	"jaipur":             {26.9124, 75.7873},
	"lucknow":            {26.8467, 80.9462},
	"kanpur":             {26.4499, 80.3319},
	"nagpur":             {21.1458, 79.0882},
	"indore":             {22.7196, 75.8577},
	"thane":              {19.2183, 72.9781},
	"bhopal":             {23.2599, 77.4126},
	"visakhapatnam":      {17.6868, 83.2185},
	"pimpri":             {18.6298, 73.7997},
	"patna":              {25.5941, 85.1376},
	"vadodara":           {22.3072, 73.1812},
	"ludhiana":           {30.9010, 75.8573},
	"agra":               {27.1767, 78.0081},
	"nashik":             {19.9975, 73.7898},
	"faridabad":          {28.4089, 77.3178},
	"meerut":             {28.9845, 77.7064},
	"rajkot":             {22.3039, 70.8022},
	"kalyan":             {19.2437, 73.1355},
	"vasai":              {19.4259, 72.8225},
	"varanasi":           {25.3176, 82.9739},
	"srinagar":           {34.0837, 74.7973},
	"aurangabad":         {19.8762, 75.3433},
	"noida":              {28.5355, 77.3910},
	"solapur":            {17.6599, 75.9064},
	"ranchi":             {23.3441, 85.3096},
	"kochi":              {9.9312, 76.2673},
	"coimbatore":         {11.0168, 76.9558},
	"jabalpur":           {23.1815, 79.9864},
	"gwalior":            {26.2183, 78.1828},
	"vijayawada":         {16.5062, 80.6480},
	"jodhpur":            {26.2389, 73.0243},
	"madurai":            {9.9252, 78.1198},
	"raipur":             {21.2514, 81.6296},
	"chandigarh":         {30.7333, 76.7794},
	"tiruchirappalli":    {10.7905, 78.7047},
	"mysore":             {12.2958, 76.6394},
	"mysuru":             {12.2958, 76.6394},
	"bhubaneswar":        {20.2961, 85.8245},
	"amritsar":           {31.6340, 74.8723},
	"warangal":           {17.9689, 79.5941},
	"salem":              {11.6643, 78.1460},
	"mira":               {19.2952, 72.8544},
	"thiruvananthapuram": {8.5241, 76.9366},
	"bhiwandi":           {19.3002, 73.0582},
	"saharanpur":         {29.9675, 77.5451},
	"gorakhpur":          {26.7606, 83.3732},
	"bikaner":            {28.0229, 73.3119},
	"amravati":           {20.9374, 77.7796},
	"jalandhar":          {31.3260, 75.5762},
	"ulhasnagar":         {19.2215, 73.1645},
	"jammu":              {32.7266, 74.8570},
	"sangli":             {16.8524, 74.5815},
	"mangalore":          {12.9141, 74.8560},
	"erode":              {11.3428, 77.7274},
	"belgaum":            {15.8497, 74.4977},
	"ambattur":           {13.1077, 80.1614},
	"tirunelveli":        {8.7139, 77.7567},
	"malegaon":           {20.5598, 74.5252},
	"gaya":               {24.7914, 85.0002},
	"jalgaon":            {21.0077, 75.5626},
	"udaipur":            {24.5854, 73.7125},
	"maheshtala":         {22.5086, 88.2532},
}

func notFound(name string) error {
	return &InputError{Msg: fmt.Sprintf("Location %q not found. Please provide coordinates or use a supported city name.", name)}
}

// resolve fills in coordinates from the city table when only a name is given.
// A zero coordinate counts as missing.
func resolve(loc *Location) (ResolvedLocation, error) {
	lat, lng := coordValue(loc.Latitude), coordValue(loc.Longitude)

	if loc.Name != "" && (lat == 0 || lng == 0) {
		c, ok := cities[strings.ToLower(strings.TrimSpace(loc.Name))]
		if !ok {
			return ResolvedLocation{}, notFound(loc.Name)
		}
		return ResolvedLocation{Latitude: c.lat, Longitude: c.lng, CityName: loc.Name}, nil
	}

	name := loc.CityName
	if name == "" {
		name = fmt.Sprintf("Location (%s, %s)", formatCoord(lat), formatCoord(lng))
	}
	return ResolvedLocation{Latitude: lat, Longitude: lng, CityName: name}, nil
}

func coordValue(c *Coord) float64 {
	if c == nil {
		return 0
	}
	return float64(*c)
}
