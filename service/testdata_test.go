package service

// catalogCSV is a small export: one two-color family and one singleton
const catalogCSV = "Nummer,Navn,Sider,Lager\r\n" +
	"A-1,Lamp Black,p1,5\r\n" +
	"A-2,Lamp White,p2,7\r\n" +
	"B-3,Spot,,1\r\n"
