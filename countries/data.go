// SPDX-License-Identifier: MIT

package countries

// All is the static ISO 3166-1 reference list, alpha-2 codes with the common
// English names and frequently seen variants.
//
//nolint:gochecknoglobals // Static reference data.
var All = []*Country{
	{Code: "AF", Name: "Afghanistan"},
	{Code: "AL", Name: "Albania"},
	{Code: "DZ", Name: "Algeria"},
	{Code: "AD", Name: "Andorra"},
	{Code: "AO", Name: "Angola"},
	{Code: "AR", Name: "Argentina"},
	{Code: "AM", Name: "Armenia"},
	{Code: "AU", Name: "Australia"},
	{Code: "AT", Name: "Austria"},
	{Code: "AZ", Name: "Azerbaijan"},
	{Code: "BS", Name: "Bahamas", Aliases: []string{"The Bahamas"}},
	{Code: "BH", Name: "Bahrain"},
	{Code: "BD", Name: "Bangladesh"},
	{Code: "BY", Name: "Belarus"},
	{Code: "BE", Name: "Belgium"},
	{Code: "BZ", Name: "Belize"},
	{Code: "BJ", Name: "Benin"},
	{Code: "BT", Name: "Bhutan"},
	{Code: "BO", Name: "Bolivia"},
	{Code: "BA", Name: "Bosnia and Herzegovina", Aliases: []string{"Bosnia"}},
	{Code: "BW", Name: "Botswana"},
	{Code: "BR", Name: "Brazil", Aliases: []string{"Brasil"}},
	{Code: "BN", Name: "Brunei"},
	{Code: "BG", Name: "Bulgaria"},
	{Code: "BF", Name: "Burkina Faso"},
	{Code: "BI", Name: "Burundi"},
	{Code: "KH", Name: "Cambodia"},
	{Code: "CM", Name: "Cameroon"},
	{Code: "CA", Name: "Canada"},
	{Code: "CV", Name: "Cape Verde", Aliases: []string{"Cabo Verde"}},
	{Code: "CF", Name: "Central African Republic"},
	{Code: "TD", Name: "Chad"},
	{Code: "CL", Name: "Chile"},
	{Code: "CN", Name: "China", Aliases: []string{"People's Republic of China"}},
	{Code: "CO", Name: "Colombia"},
	{Code: "KM", Name: "Comoros"},
	{Code: "CG", Name: "Congo", Aliases: []string{"Republic of the Congo"}},
	{Code: "CD", Name: "Democratic Republic of the Congo", Aliases: []string{"DR Congo", "Congo-Kinshasa"}},
	{Code: "CR", Name: "Costa Rica"},
	{Code: "CI", Name: "Ivory Coast", Aliases: []string{"Cote d'Ivoire", "Côte d'Ivoire"}},
	{Code: "HR", Name: "Croatia"},
	{Code: "CU", Name: "Cuba"},
	{Code: "CY", Name: "Cyprus"},
	{Code: "CZ", Name: "Czechia", Aliases: []string{"Czech Republic"}},
	{Code: "DK", Name: "Denmark"},
	{Code: "DJ", Name: "Djibouti"},
	{Code: "DO", Name: "Dominican Republic"},
	{Code: "EC", Name: "Ecuador"},
	{Code: "EG", Name: "Egypt"},
	{Code: "SV", Name: "El Salvador"},
	{Code: "EE", Name: "Estonia"},
	{Code: "ET", Name: "Ethiopia"},
	{Code: "FJ", Name: "Fiji"},
	{Code: "FI", Name: "Finland"},
	{Code: "FR", Name: "France"},
	{Code: "GA", Name: "Gabon"},
	{Code: "GM", Name: "Gambia"},
	{Code: "GE", Name: "Georgia"},
	{Code: "DE", Name: "Germany", Aliases: []string{"Deutschland"}},
	{Code: "GH", Name: "Ghana"},
	{Code: "GR", Name: "Greece"},
	{Code: "GT", Name: "Guatemala"},
	{Code: "GN", Name: "Guinea"},
	{Code: "GY", Name: "Guyana"},
	{Code: "HT", Name: "Haiti"},
	{Code: "HN", Name: "Honduras"},
	{Code: "HU", Name: "Hungary"},
	{Code: "IS", Name: "Iceland"},
	{Code: "IN", Name: "India"},
	{Code: "ID", Name: "Indonesia"},
	{Code: "IR", Name: "Iran"},
	{Code: "IQ", Name: "Iraq"},
	{Code: "IE", Name: "Ireland"},
	{Code: "IL", Name: "Israel"},
	{Code: "IT", Name: "Italy", Aliases: []string{"Italia"}},
	{Code: "JM", Name: "Jamaica"},
	{Code: "JP", Name: "Japan"},
	{Code: "JO", Name: "Jordan"},
	{Code: "KZ", Name: "Kazakhstan"},
	{Code: "KE", Name: "Kenya"},
	{Code: "KR", Name: "South Korea", Aliases: []string{"Korea", "Republic of Korea"}},
	{Code: "KP", Name: "North Korea"},
	{Code: "KW", Name: "Kuwait"},
	{Code: "KG", Name: "Kyrgyzstan"},
	{Code: "LA", Name: "Laos"},
	{Code: "LV", Name: "Latvia"},
	{Code: "LB", Name: "Lebanon"},
	{Code: "LS", Name: "Lesotho"},
	{Code: "LR", Name: "Liberia"},
	{Code: "LY", Name: "Libya"},
	{Code: "LI", Name: "Liechtenstein"},
	{Code: "LT", Name: "Lithuania"},
	{Code: "LU", Name: "Luxembourg"},
	{Code: "MG", Name: "Madagascar"},
	{Code: "MW", Name: "Malawi"},
	{Code: "MY", Name: "Malaysia"},
	{Code: "MV", Name: "Maldives"},
	{Code: "ML", Name: "Mali"},
	{Code: "MT", Name: "Malta"},
	{Code: "MR", Name: "Mauritania"},
	{Code: "MU", Name: "Mauritius"},
	{Code: "MX", Name: "Mexico"},
	{Code: "MD", Name: "Moldova"},
	{Code: "MC", Name: "Monaco"},
	{Code: "MN", Name: "Mongolia"},
	{Code: "ME", Name: "Montenegro"},
	{Code: "MA", Name: "Morocco"},
	{Code: "MZ", Name: "Mozambique"},
	{Code: "MM", Name: "Myanmar", Aliases: []string{"Burma"}},
	{Code: "NA", Name: "Namibia"},
	{Code: "NP", Name: "Nepal"},
	{Code: "NL", Name: "Netherlands", Aliases: []string{"The Netherlands", "Holland", "Nederland"}},
	{Code: "NZ", Name: "New Zealand"},
	{Code: "NI", Name: "Nicaragua"},
	{Code: "NE", Name: "Niger"},
	{Code: "NG", Name: "Nigeria"},
	{Code: "MK", Name: "North Macedonia", Aliases: []string{"Macedonia"}},
	{Code: "NO", Name: "Norway"},
	{Code: "OM", Name: "Oman"},
	{Code: "PK", Name: "Pakistan"},
	{Code: "PA", Name: "Panama"},
	{Code: "PG", Name: "Papua New Guinea"},
	{Code: "PY", Name: "Paraguay"},
	{Code: "PE", Name: "Peru"},
	{Code: "PH", Name: "Philippines", Aliases: []string{"The Philippines"}},
	{Code: "PL", Name: "Poland"},
	{Code: "PT", Name: "Portugal"},
	{Code: "QA", Name: "Qatar"},
	{Code: "RO", Name: "Romania"},
	{Code: "RU", Name: "Russia", Aliases: []string{"Russian Federation"}},
	{Code: "RW", Name: "Rwanda"},
	{Code: "SA", Name: "Saudi Arabia"},
	{Code: "SN", Name: "Senegal"},
	{Code: "RS", Name: "Serbia"},
	{Code: "SC", Name: "Seychelles"},
	{Code: "SL", Name: "Sierra Leone"},
	{Code: "SG", Name: "Singapore"},
	{Code: "SK", Name: "Slovakia"},
	{Code: "SI", Name: "Slovenia"},
	{Code: "SO", Name: "Somalia"},
	{Code: "ZA", Name: "South Africa"},
	{Code: "SS", Name: "South Sudan"},
	{Code: "ES", Name: "Spain", Aliases: []string{"España", "Espana"}},
	{Code: "LK", Name: "Sri Lanka"},
	{Code: "SD", Name: "Sudan"},
	{Code: "SR", Name: "Suriname"},
	{Code: "SE", Name: "Sweden"},
	{Code: "CH", Name: "Switzerland"},
	{Code: "SY", Name: "Syria"},
	{Code: "TW", Name: "Taiwan"},
	{Code: "TJ", Name: "Tajikistan"},
	{Code: "TZ", Name: "Tanzania"},
	{Code: "TH", Name: "Thailand"},
	{Code: "TL", Name: "Timor-Leste", Aliases: []string{"East Timor"}},
	{Code: "TG", Name: "Togo"},
	{Code: "TT", Name: "Trinidad and Tobago"},
	{Code: "TN", Name: "Tunisia"},
	{Code: "TR", Name: "Turkey", Aliases: []string{"Türkiye", "Turkiye"}},
	{Code: "TM", Name: "Turkmenistan"},
	{Code: "UG", Name: "Uganda"},
	{Code: "UA", Name: "Ukraine"},
	{Code: "AE", Name: "United Arab Emirates", Aliases: []string{"UAE"}},
	{Code: "GB", Name: "United Kingdom", Aliases: []string{"UK", "Great Britain", "England"}},
	{Code: "US", Name: "United States", Aliases: []string{"USA", "United States of America", "America"}},
	{Code: "UY", Name: "Uruguay"},
	{Code: "UZ", Name: "Uzbekistan"},
	{Code: "VE", Name: "Venezuela"},
	{Code: "VN", Name: "Vietnam", Aliases: []string{"Viet Nam"}},
	{Code: "YE", Name: "Yemen"},
	{Code: "ZM", Name: "Zambia"},
	{Code: "ZW", Name: "Zimbabwe"},
}
